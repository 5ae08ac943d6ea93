package model

import "testing"

func TestStageOrderIsStrict(t *testing.T) {
	stage := StageCasting
	seen := []Stage{stage}

	for {
		next, ok := stage.Next()
		if !ok {
			break
		}
		seen = append(seen, next)
		stage = next
	}

	expected := []Stage{StageCasting, StageFiling, StageSetting, StagePolishing}
	if len(seen) != len(expected) {
		t.Fatalf("expected %d stages, got %d", len(expected), len(seen))
	}
	for i := range expected {
		if seen[i] != expected[i] {
			t.Errorf("stage %d: expected %s, got %s", i, expected[i], seen[i])
		}
	}
}

func TestStageNext(t *testing.T) {
	tests := []struct {
		stage   Stage
		next    Stage
		hasNext bool
	}{
		{StageCasting, StageFiling, true},
		{StageFiling, StageSetting, true},
		{StageSetting, StagePolishing, true},
		{StagePolishing, "", false},
	}

	for _, tt := range tests {
		next, ok := tt.stage.Next()
		if ok != tt.hasNext {
			t.Errorf("%s: expected hasNext=%v, got %v", tt.stage, tt.hasNext, ok)
		}
		if next != tt.next {
			t.Errorf("%s: expected next %q, got %q", tt.stage, tt.next, next)
		}
	}
}

func TestStageRequiredRole(t *testing.T) {
	tests := []struct {
		stage Stage
		role  Role
	}{
		{StageCasting, RoleCaster},
		{StageFiling, RoleFiler},
		{StageSetting, RoleSetter},
		{StagePolishing, RolePolisher},
	}

	for _, tt := range tests {
		if got := tt.stage.RequiredRole(); got != tt.role {
			t.Errorf("%s: expected role %s, got %s", tt.stage, tt.role, got)
		}
	}
}

func TestStageIsFinal(t *testing.T) {
	if StageCasting.IsFinal() || StageFiling.IsFinal() || StageSetting.IsFinal() {
		t.Error("only polishing should be final")
	}
	if !StagePolishing.IsFinal() {
		t.Error("polishing should be final")
	}
}

func TestStageValid(t *testing.T) {
	for _, stage := range StageOrder {
		if !stage.Valid() {
			t.Errorf("%s should be valid", stage)
		}
	}
	if Stage("engraving").Valid() {
		t.Error("engraving should not be valid")
	}
	if Stage("").Valid() {
		t.Error("empty stage should not be valid")
	}
}
