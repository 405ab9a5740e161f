package triviagen

import "testing"

func candidate(q, correct string, wrong ...string) Candidate {
	return Candidate{Question: q, CorrectAnswer: correct, WrongAnswers: wrong}
}

func TestValidators(t *testing.T) {
	const q = "Who directed the film Jaws?"
	prior := Input{PriorQuestions: []string{"In which year was Jaws released?"}}

	tests := []struct {
		name string
		c    Candidate
		want string // failing validator, empty when accepted
	}{
		{"valid", candidate(q, "Steven Spielberg", "George Lucas", "Brian De Palma", "John Carpenter"), ""},
		{"short question", candidate("Who directed?", "Spielberg", "Lucas", "De Palma", "Carpenter"), "structural"},
		{"exactly fifteen", candidate("Who made Jaws??", "Spielberg", "Lucas", "De Palma", "Carpenter"), ""},
		{"padding does not count", candidate("   Who made?      ", "Spielberg", "Lucas", "De Palma", "Carpenter"), "structural"},
		{"two wrong answers", candidate(q, "Spielberg", "Lucas", "De Palma"), "structural"},
		{"four wrong answers", candidate(q, "Spielberg", "Lucas", "De Palma", "Carpenter", "Scott"), "structural"},
		{"blank correct", candidate(q, "  ", "Lucas", "De Palma", "Carpenter"), "structural"},
		{"blank wrong", candidate(q, "Spielberg", "Lucas", "", "Carpenter"), "structural"},
		{"duplicate answer", candidate(q, "Spielberg", "Lucas", "Spielberg", "Carpenter"), "distinct"},
		{"duplicate ignoring case", candidate(q, "Spielberg", "Lucas", "spielberg ", "Carpenter"), "distinct"},
		{"asked before", candidate("in which year was  JAWS released?", "1975", "1977", "1973", "1979"), "repeat"},
	}

	validators := DefaultConfig().Validators
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			for _, v := range validators {
				if err := v.Validate(tt.c, prior); err != nil {
					got = err.Validator
					if err.Error() == "" {
						t.Error("empty error message")
					}
					break
				}
			}
			if got != tt.want {
				t.Fatalf("failed validator = %q, want %q", got, tt.want)
			}
		})
	}
}
