package intent

import (
	"context"
	"errors"
	"testing"

	"urbangpt/logging"
	"urbangpt/provider/testutil"
)

var testSchema = map[string][]string{
	"census.csv":  {"Age", "Income", "Education"},
	"transit.csv": {"Ridership", "Year"},
}

func newTestExtractor(mock *testutil.MockProvider) *Extractor {
	return NewExtractor(mock, logging.NewDiscard())
}

func TestReconcileLocally(t *testing.T) {
	mock := testutil.NewMockProvider("test-model")
	e := newTestExtractor(mock)

	t.Run("exact match ignoring case", func(t *testing.T) {
		got := e.Reconcile(context.Background(), Variables{Independent: []string{"age"}, Dependent: "income"}, testSchema)
		if !got.Resolved {
			t.Fatal("expected resolved")
		}
		if got.Variables.Independent[0] != "Age" || got.Variables.Dependent != "Income" {
			t.Errorf("resolved to %v / %q, want the discovered column casing", got.Variables.Independent, got.Variables.Dependent)
		}
	})

	t.Run("misspelling resolves by fuzzy match", func(t *testing.T) {
		got := e.Reconcile(context.Background(), Variables{Independent: []string{"Age"}, Dependent: "incom"}, testSchema)
		if !got.Resolved {
			t.Fatal("expected resolved")
		}
		if got.Variables.Dependent != "Income" {
			t.Errorf("dependent resolved to %q, want Income", got.Variables.Dependent)
		}
	})

	t.Run("no model call when local resolution succeeds", func(t *testing.T) {
		if len(mock.CompleteJSONCalls) != 0 {
			t.Errorf("local resolution made %d model calls", len(mock.CompleteJSONCalls))
		}
	})
}

func TestReconcileFallsBackToModel(t *testing.T) {
	mock := testutil.NewMockProvider("test-model")
	mock.ScriptJSON(`{"independent_var": "Age", "dependent_var": "Income"}`)
	e := newTestExtractor(mock)

	got := e.Reconcile(context.Background(), Variables{Independent: []string{"qqq"}, Dependent: "Income"}, testSchema)
	if !got.Resolved {
		t.Fatal("expected model fallback to resolve")
	}
	if len(mock.CompleteJSONCalls) != 1 {
		t.Errorf("model called %d times, want 1", len(mock.CompleteJSONCalls))
	}
}

func TestReconcileUnresolved(t *testing.T) {
	t.Run("model reports no match", func(t *testing.T) {
		mock := testutil.NewMockProvider("test-model")
		mock.ScriptJSON(`{"error": "no plausible column"}`)
		e := newTestExtractor(mock)

		got := e.Reconcile(context.Background(), Variables{Independent: []string{"qqq"}, Dependent: "zzz"}, testSchema)
		if got.Resolved {
			t.Error("error reply must be unresolved")
		}
	})

	t.Run("provider failure", func(t *testing.T) {
		mock := testutil.NewMockProvider("test-model")
		mock.CompleteJSONFunc = func(ctx context.Context, system, prompt string) (string, error) {
			return "", errors.New("connection refused")
		}
		e := newTestExtractor(mock)

		got := e.Reconcile(context.Background(), Variables{Independent: []string{"qqq"}, Dependent: "zzz"}, testSchema)
		if got.Resolved {
			t.Error("provider failure must be unresolved")
		}
	})

	t.Run("empty schema", func(t *testing.T) {
		mock := testutil.NewMockProvider("test-model")
		e := newTestExtractor(mock)

		got := e.Reconcile(context.Background(), Variables{Independent: []string{"Age"}, Dependent: "Income"}, map[string][]string{})
		if got.Resolved {
			t.Error("nothing to reconcile against")
		}
	})
}

func TestExtractVariables(t *testing.T) {
	mock := testutil.NewMockProvider("test-model")
	mock.ScriptJSON(`{"independent_var": "age", "dependent_var": "income"}`)
	e := newTestExtractor(mock)

	got := e.ExtractVariables(context.Background(), "regress income on age", nil)
	if got.Outcome != OutcomeResolved {
		t.Fatalf("outcome = %v, want resolved", got.Outcome)
	}
	if got.Variables.Dependent != "income" {
		t.Errorf("dependent = %q", got.Variables.Dependent)
	}
}

func TestExtractVariablesProviderFailure(t *testing.T) {
	mock := testutil.NewMockProvider("test-model")
	mock.CompleteJSONFunc = func(ctx context.Context, system, prompt string) (string, error) {
		return "", errors.New("timeout")
	}
	e := newTestExtractor(mock)

	got := e.ExtractVariables(context.Background(), "regress income on age", nil)
	if got.Outcome != OutcomeMissingIndependent {
		t.Errorf("outcome = %v, want missing independent", got.Outcome)
	}
}

func TestClassifyListRequest(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  bool
	}{
		{"yes", `{"answer": "yes"}`, true},
		{"no", `{"answer": "no"}`, false},
		{"garbage", "not json", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := testutil.NewMockProvider("test-model")
			mock.ScriptJSON(tt.reply)
			e := newTestExtractor(mock)

			if got := e.ClassifyListRequest(context.Background(), "what indexes are there", nil); got != tt.want {
				t.Errorf("ClassifyListRequest() = %v, want %v", got, tt.want)
			}
		})
	}
}
