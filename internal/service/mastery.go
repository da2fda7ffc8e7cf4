package service

import (
	"context"

	"go_vocab_quiz/internal/middleware"
	"go_vocab_quiz/internal/repository"
)

// MasteryUpdater writes one multiplicity value back to the document store.
type MasteryUpdater struct {
	repo repository.WordRepository
}

func NewMasteryUpdater(repo repository.WordRepository) *MasteryUpdater {
	return &MasteryUpdater{repo: repo}
}

// Update sets the stored multiplicity of pageID to newMultiplicity and
// reports whether the write succeeded. Failures are logged, not returned.
// decrease only changes how the write is logged.
func (u *MasteryUpdater) Update(ctx context.Context, pageID string, newMultiplicity int, decrease bool) bool {
	logger := middleware.GetLogger(ctx).With("page_id", pageID, "multiplicity", newMultiplicity, "decrease", decrease)

	if err := u.repo.UpdateMultiplicity(ctx, pageID, newMultiplicity); err != nil {
		logger.Error("Failed to update multiplicity", "error", err)
		return false
	}
	if decrease {
		logger.Info("Multiplicity lowered")
	} else {
		logger.Info("Multiplicity raised")
	}
	return true
}
