package classifier

import (
	"context"
	"fmt"

	"github.com/newscat-core/server/internal/profile"
	logx "github.com/newscat-core/server/pkg/logger"
)

// Fallback answers with Secondary whenever Primary fails.
type Fallback struct {
	Primary   Classifier
	Secondary Classifier
}

func NewFallback(primary, secondary Classifier) *Fallback {
	return &Fallback{Primary: primary, Secondary: secondary}
}

func (f *Fallback) Name() string {
	return NameOf(f.Primary)
}

func (f *Fallback) Classify(ctx context.Context, p profile.Profile, statement string) (Result, error) {
	res, err := f.Primary.Classify(ctx, p, statement)
	if err == nil {
		return res, nil
	}
	if ctx.Err() != nil {
		return Result{}, err
	}

	logx.Warn().
		Err(err).
		Str("primary", NameOf(f.Primary)).
		Str("secondary", NameOf(f.Secondary)).
		Msg("primary classifier failed; falling back")

	res, ferr := f.Secondary.Classify(ctx, p, statement)
	if ferr != nil {
		return Result{}, fmt.Errorf("fallback classifier: %w (primary: %v)", ferr, err)
	}
	return res, nil
}

var _ Classifier = (*Fallback)(nil)
