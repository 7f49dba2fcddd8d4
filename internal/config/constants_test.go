package config

import "testing"

func TestGeneratedNamesAreReserved(t *testing.T) {
	for _, name := range []string{CaughtExceptionName, PlaceholderPrefix + "0", MatchSubjectPrefix + "0"} {
		if !IsReserved(name) {
			t.Errorf("generated name %s is not reserved", name)
		}
	}
	for _, name := range []string{"e", "tempV0", "match0", "x_1"} {
		if IsReserved(name) {
			t.Errorf("user name %s is reserved", name)
		}
	}
}
