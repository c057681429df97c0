package tx

import "testing"

func TestLockClause(t *testing.T) {
	tests := map[string]string{
		"mysql":    " FOR UPDATE",
		"postgres": " FOR UPDATE",
		"sqlite3":  "",
	}
	for driver, want := range tests {
		if got := LockClause(driver); got != want {
			t.Errorf("LockClause(%q) = %q, want %q", driver, got, want)
		}
	}
}
