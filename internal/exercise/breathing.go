package exercise

import (
	"fmt"
	"io"
	"time"
)

// Breath is one step of a breathing cycle
type Breath struct {
	Prompt string
	Hold   time.Duration
}

// Cycles is the number of repetitions of Steps
const Cycles = 4

// Steps make up one breathing cycle
var Steps = []Breath{
	{"Breathe in deeply through your nose... (4 seconds)", 4 * time.Second},
	{"Hold your breath... (4 seconds)", 4 * time.Second},
	{"Now, exhale slowly through your mouth... (6 seconds)", 6 * time.Second},
}

// Breathing prints the guided breathing exercise to w
func Breathing(w io.Writer, p Pacer) {
	fmt.Fprintln(w, "\nLet's try a simple breathing exercise to help you relax.")
	fmt.Fprintf(w, "We'll do a cycle of %d breaths.\n", Cycles)
	p.Pause(2 * time.Second)

	for i := 1; i <= Cycles; i++ {
		fmt.Fprintf(w, "\n--- Cycle %d of %d ---\n", i, Cycles)
		for _, step := range Steps {
			fmt.Fprintln(w, step.Prompt)
			p.Pause(step.Hold)
		}
	}

	fmt.Fprintln(w, "\nWell done. I hope you're feeling a bit calmer.")
	p.Pause(2 * time.Second)
}
