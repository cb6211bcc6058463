package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/newscat-core/server/internal/classifier"
)

// GetClassifierTools returns the tools an agent graph can bind to expose c.
func GetClassifierTools(c classifier.Classifier) []tool.BaseTool {
	return []tool.BaseTool{
		createClassifyNewsTool(c),
	}
}

// GetToolInfos collects the schema of each tool for model binding.
func GetToolInfos(ctx context.Context, tools []tool.BaseTool) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(tools))
	for _, t := range tools {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("tool info: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}
