package intent

import "testing"

func TestDecodeExtraction(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantOutcome Outcome
		wantMessage string
		wantIndep   []string
		wantIsList  bool
		wantDep     string
	}{
		{
			name:        "single pair",
			raw:         `{"independent_var": "age", "dependent_var": "income"}`,
			wantOutcome: OutcomeResolved,
			wantIndep:   []string{"age"},
			wantDep:     "income",
		},
		{
			name:        "several independent variables",
			raw:         `{"independent_var": ["age", "education"], "dependent_var": "income"}`,
			wantOutcome: OutcomeResolved,
			wantIndep:   []string{"age", "education"},
			wantIsList:  true,
			wantDep:     "income",
		},
		{
			name:        "model reported error",
			raw:         `{"error": "The message does not describe a regression."}`,
			wantOutcome: OutcomeError,
			wantMessage: "The message does not describe a regression.",
		},
		{
			name:        "missing independent variable",
			raw:         `{"dependent_var": "income"}`,
			wantOutcome: OutcomeMissingIndependent,
		},
		{
			name:        "missing dependent variable",
			raw:         `{"independent_var": "age"}`,
			wantOutcome: OutcomeMissingDependent,
		},
		{
			name:        "empty independent array",
			raw:         `{"independent_var": [], "dependent_var": "income"}`,
			wantOutcome: OutcomeMissingIndependent,
		},
		{
			name:        "not json",
			raw:         "sorry, I could not parse that",
			wantOutcome: OutcomeMissingIndependent,
		},
		{
			name:        "blank values treated as missing",
			raw:         `{"independent_var": "  ", "dependent_var": "income"}`,
			wantOutcome: OutcomeMissingIndependent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeExtraction(tt.raw)
			if got.Outcome != tt.wantOutcome {
				t.Fatalf("outcome = %v, want %v", got.Outcome, tt.wantOutcome)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", got.Message, tt.wantMessage)
			}
			if tt.wantOutcome != OutcomeResolved {
				return
			}
			if len(got.Variables.Independent) != len(tt.wantIndep) {
				t.Fatalf("independent = %v, want %v", got.Variables.Independent, tt.wantIndep)
			}
			for i := range tt.wantIndep {
				if got.Variables.Independent[i] != tt.wantIndep[i] {
					t.Errorf("independent[%d] = %q, want %q", i, got.Variables.Independent[i], tt.wantIndep[i])
				}
			}
			if got.Variables.IndependentIsList != tt.wantIsList {
				t.Errorf("isList = %v, want %v", got.Variables.IndependentIsList, tt.wantIsList)
			}
			if got.Variables.Dependent != tt.wantDep {
				t.Errorf("dependent = %q, want %q", got.Variables.Dependent, tt.wantDep)
			}
		})
	}
}

func TestDecodeReconciliation(t *testing.T) {
	listInput := Variables{Independent: []string{"age", "educ"}, IndependentIsList: true, Dependent: "incom"}

	t.Run("input arity preserved", func(t *testing.T) {
		got := decodeReconciliation(`{"independent_var": ["age", "education"], "dependent_var": "income"}`, listInput)
		if !got.Resolved {
			t.Fatal("expected resolved")
		}
		if !got.Variables.IndependentIsList {
			t.Error("list input must stay a list")
		}
	})

	t.Run("single name reply for list input stays a list", func(t *testing.T) {
		got := decodeReconciliation(`{"independent_var": "age", "dependent_var": "income"}`, listInput)
		if !got.Resolved {
			t.Fatal("expected resolved")
		}
		if !got.Variables.IndependentIsList {
			t.Error("input arity wins over reply shape")
		}
	})

	t.Run("error reply unresolved", func(t *testing.T) {
		got := decodeReconciliation(`{"error": "no match"}`, listInput)
		if got.Resolved {
			t.Error("error reply must be unresolved")
		}
	})

	t.Run("missing key unresolved", func(t *testing.T) {
		got := decodeReconciliation(`{"independent_var": "age"}`, listInput)
		if got.Resolved {
			t.Error("reply without dependent_var must be unresolved")
		}
	})

	t.Run("invalid json unresolved", func(t *testing.T) {
		got := decodeReconciliation("not json", listInput)
		if got.Resolved {
			t.Error("invalid reply must be unresolved")
		}
	})
}

func TestDecodeYesNo(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{`{"answer": "yes"}`, true},
		{`{"answer": "Yes"}`, true},
		{`{"answer": "true"}`, true},
		{`{"answer": true}`, true},
		{`{"answer": "no"}`, false},
		{`{"answer": "false"}`, false},
		{`{}`, false},
		{"garbage", false},
	}

	for _, tt := range tests {
		if got := decodeYesNo(tt.raw); got != tt.want {
			t.Errorf("decodeYesNo(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
