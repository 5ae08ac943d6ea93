package service

import (
	"testing"

	"github.com/google/uuid"

	"github.com/prishaadesai/jewelry-backend/internal/model"
	"github.com/prishaadesai/jewelry-backend/pkg/apperror"
)

func TestCompletionGuard(t *testing.T) {
	workerID := uuid.New()

	tests := []struct {
		name        string
		transaction model.Transaction
		wantKind    apperror.Kind
	}{
		{
			"someone else's task reads as missing",
			model.Transaction{WorkerID: uuid.New(), Status: model.TxInProgress},
			apperror.KindNotFound,
		},
		{
			"double completion conflicts",
			model.Transaction{WorkerID: workerID, Status: model.TxCompleted},
			apperror.KindConflict,
		},
		{
			"cancelled task conflicts",
			model.Transaction{WorkerID: workerID, Status: model.TxCancelled},
			apperror.KindConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := completionGuard(&tt.transaction, workerID)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := apperror.KindOf(err); got != tt.wantKind {
				t.Errorf("expected kind %v, got %v", tt.wantKind, got)
			}
		})
	}

	owned := model.Transaction{WorkerID: workerID, Status: model.TxInProgress}
	if err := completionGuard(&owned, workerID); err != nil {
		t.Errorf("unexpected error for owned in-progress task: %v", err)
	}
}

func TestJobStatusAfterStageCompletion(t *testing.T) {
	tests := []struct {
		stage model.Stage
		want  model.JobStatus
	}{
		{model.StageCasting, model.JobPendingAssignment},
		{model.StageFiling, model.JobPendingAssignment},
		{model.StageSetting, model.JobPendingAssignment},
		{model.StagePolishing, model.JobCompleted},
	}

	for _, tt := range tests {
		if got := jobStatusAfter(tt.stage); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.stage, tt.want, got)
		}
	}
}

func TestComputeLoss(t *testing.T) {
	tests := []struct {
		name           string
		issued         float64
		returned       float64
		wantLoss       float64
		wantPercentage float64
	}{
		{"casting stage of the 100g example", 100, 95, 5, 5},
		{"filing stage of the 100g example", 95, 90, 5, 5.26},
		{"no loss", 50, 50, 0, 0},
		{"total loss", 10, 0, 10, 100},
		{"percentage rounds to 2 decimals", 100, 66.666, 33.334, 33.33},
		{"loss rounds to 3 decimals", 10, 9.8765, 0.124, 1.24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loss, percentage, err := computeLoss(tt.issued, tt.returned)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if loss != tt.wantLoss {
				t.Errorf("expected loss %v, got %v", tt.wantLoss, loss)
			}
			if percentage != tt.wantPercentage {
				t.Errorf("expected loss percentage %v, got %v", tt.wantPercentage, percentage)
			}
		})
	}
}

func TestComputeLossRejectsNegativeReturn(t *testing.T) {
	_, _, err := computeLoss(100, -1)
	if err == nil {
		t.Fatal("expected error for negative returned weight")
	}
	if apperror.KindOf(err) != apperror.KindValidation {
		t.Errorf("expected validation error, got kind %v", apperror.KindOf(err))
	}
}

func TestComputeLossRejectsReturnAboveIssued(t *testing.T) {
	// Rejected rather than clamped: loss can never be negative
	_, _, err := computeLoss(100, 100.001)
	if err == nil {
		t.Fatal("expected error for returned weight above issued weight")
	}
	if apperror.KindOf(err) != apperror.KindValidation {
		t.Errorf("expected validation error, got kind %v", apperror.KindOf(err))
	}
}

// Walks the full production sequence of a 100g job and checks the
// cumulative numbers at each step.
func TestLossAccumulationAcrossStages(t *testing.T) {
	initialWeight := 100.0

	issued := initialWeight
	totalLoss := 0.0
	returns := []float64{95, 90, 88, 87.5}

	for i, returned := range returns {
		loss, _, err := computeLoss(issued, returned)
		if err != nil {
			t.Fatalf("step %d: unexpected error: %v", i, err)
		}
		totalLoss = round3(totalLoss + loss)
		issued = returned
	}

	if totalLoss != 12.5 {
		t.Errorf("expected total loss 12.5, got %v", totalLoss)
	}
	jobLossPercentage := round2(totalLoss / initialWeight * 100)
	if jobLossPercentage != 12.5 {
		t.Errorf("expected job loss percentage 12.5, got %v", jobLossPercentage)
	}
	if totalLoss > initialWeight {
		t.Error("total loss must never exceed initial weight")
	}
}

func TestRounding(t *testing.T) {
	if got := round3(1.23456); got != 1.235 {
		t.Errorf("round3: expected 1.235, got %v", got)
	}
	if got := round2(5.263157); got != 5.26 {
		t.Errorf("round2: expected 5.26, got %v", got)
	}
	if got := round2(12.5); got != 12.5 {
		t.Errorf("round2: expected 12.5, got %v", got)
	}
}
