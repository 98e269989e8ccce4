package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/pbaille/aura/internal/classifier"
	"github.com/pbaille/aura/internal/domain"
	"github.com/pbaille/aura/internal/exercise"
	"github.com/pbaille/aura/internal/resources"
	"github.com/pbaille/aura/internal/store"
)

// ProgressWindow is how many recent entries the progress view summarizes
const ProgressWindow = 5

// Options configures the console side of a Session
type Options struct {
	In     io.Reader
	Out    io.Writer
	Logger *slog.Logger
	Pacer  exercise.Pacer
}

// Session ties the stores and the classifier to a console conversation
type Session struct {
	in    *bufio.Reader
	out   io.Writer
	log   *slog.Logger
	pacer exercise.Pacer

	profile    *store.Profile
	moods      *store.MoodLog
	catalog    *resources.Catalog
	classifier *classifier.Classifier

	name    string
	state   State
	greeted bool
}

// Outcome describes what a single check-in did
type Outcome struct {
	Crisis bool
	Entry  *domain.MoodLogEntry
}

var errEndOfInput = errors.New("end of input")

// New creates a Session. Nil options fall back to empty input, discarded
// output, a discarding logger and no pacing.
func New(profile *store.Profile, moods *store.MoodLog, catalog *resources.Catalog, clf *classifier.Classifier, opts Options) *Session {
	if opts.In == nil {
		opts.In = strings.NewReader("")
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Pacer == nil {
		opts.Pacer = exercise.NoPause
	}

	return &Session{
		in:         bufio.NewReader(opts.In),
		out:        opts.Out,
		log:        opts.Logger,
		pacer:      opts.Pacer,
		profile:    profile,
		moods:      moods,
		catalog:    catalog,
		classifier: clf,
		name:       profile.Name(),
	}
}

// State returns the current state
func (s *Session) State() State {
	return s.state
}

// Run drives the state machine until the user exits or input ends
func (s *Session) Run() error {
	s.state = MenuIdle
	if s.name == "" {
		s.state = Onboarding
	}

	for s.state != Exited {
		next, err := s.step()
		if errors.Is(err, errEndOfInput) {
			s.log.Debug("input closed", "state", s.state)
			next = Exited
		} else if err != nil {
			return err
		}
		if next != s.state {
			s.log.Debug("transition", "from", s.state, "to", next)
		}
		s.state = next
	}
	return nil
}

func (s *Session) step() (State, error) {
	switch s.state {
	case Onboarding:
		return s.onboard()
	case MenuIdle:
		return s.menu()
	case CheckIn:
		return s.checkIn()
	case Resources:
		return s.resources()
	case Progress:
		s.ShowProgress(ProgressWindow)
		return MenuIdle, nil
	default:
		return Exited, fmt.Errorf("no handler for state %s", s.state)
	}
}

func (s *Session) onboard() (State, error) {
	fmt.Fprintln(s.out, "Hello! I'm Aura, your personal mental well-being companion.")

	var name string
	for name == "" {
		line, err := s.prompt("To get started, what should I call you? ")
		if err != nil {
			return Exited, err
		}
		name = strings.TrimSpace(line)
	}

	s.name = name
	if err := s.profile.SetName(name); err != nil {
		s.log.Warn("save profile", "err", err)
		fmt.Fprintln(s.out, "I couldn't save your name, so I may ask again next time.")
	}
	fmt.Fprintf(s.out, "It's nice to meet you, %s.\n", name)
	return MenuIdle, nil
}

func (s *Session) menu() (State, error) {
	if !s.greeted {
		s.greeted = true
		fmt.Fprintf(s.out, "\nWelcome back, %s! I'm here for you.\n", s.name)
	}

	fmt.Fprintln(s.out, "\nHow can I help you today?")
	fmt.Fprintln(s.out, "  1. Check-in with my mood")
	fmt.Fprintln(s.out, "  2. Get helpful resources")
	fmt.Fprintln(s.out, "  3. View my progress")
	fmt.Fprintln(s.out, "  4. Exit")
	choice, err := s.prompt("Enter the number of your choice: ")
	if err != nil {
		return Exited, err
	}

	next, ok := menuChoices[strings.TrimSpace(choice)]
	if !ok {
		fmt.Fprintln(s.out, "That's not a valid option. Please choose a number from 1 to 4.")
		return MenuIdle, nil
	}
	if next == Exited {
		fmt.Fprintf(s.out, "Take care, %s. I'm here whenever you need me.\n", s.name)
	}
	return next, nil
}

func (s *Session) checkIn() (State, error) {
	fmt.Fprintln(s.out, "\nLet's check in. How are you feeling today?")
	text, err := s.prompt("Feel free to write as much as you like: ")
	if err != nil {
		return Exited, err
	}

	outcome, err := s.Record(text)
	if err != nil {
		// The apology is already printed; the user stays in the session.
		return MenuIdle, nil
	}

	if outcome.Entry != nil && outcome.Entry.Sentiment == domain.Negative {
		answer, err := s.prompt("Would you like to try a quick relaxation exercise? (yes/no): ")
		if err != nil {
			return Exited, err
		}
		if affirmative(answer) {
			exercise.Breathing(s.out, s.pacer)
		}
	}
	if !outcome.Crisis {
		s.pacer.Pause(time.Second)
	}
	return MenuIdle, nil
}

// Record handles one journal entry. Crisis text is answered with the helpline
// and never logged. Anything else, blank text included, is labelled and appended.
func (s *Session) Record(text string) (Outcome, error) {
	if kw, ok := s.classifier.MatchCrisis(text); ok {
		s.log.Debug("crisis keyword matched", "keyword", kw)
		s.showCrisis()
		return Outcome{Crisis: true}, nil
	}

	entry, err := s.moods.Append(text)
	if err != nil {
		s.log.Warn("append mood entry", "err", err)
		fmt.Fprintln(s.out, "\nI'm sorry, I couldn't save that entry. Your earlier entries are safe.")
		return Outcome{}, err
	}
	s.log.Debug("mood entry saved", "id", entry.ID, "sentiment", entry.Sentiment)

	fmt.Fprintln(s.out, "\nThank you for sharing.")
	switch entry.Sentiment {
	case domain.Negative:
		fmt.Fprintln(s.out, "It sounds like you're having a tough time.")
	case domain.Positive:
		fmt.Fprintln(s.out, "I'm really glad to hear you're feeling positive today!")
	default:
		fmt.Fprintln(s.out, "It's good to take a moment to reflect.")
	}
	return Outcome{Entry: &entry}, nil
}

func (s *Session) showCrisis() {
	info := s.catalog.CrisisInfo()
	rule := strings.Repeat("=", 50)

	fmt.Fprintln(s.out, "\n"+rule)
	fmt.Fprintln(s.out, "IMPORTANT:")
	fmt.Fprintln(s.out, "It sounds like you are in significant distress.")
	fmt.Fprintln(s.out, info.Disclaimer)
	if info.Info != "" {
		fmt.Fprintln(s.out, info.Info)
	} else {
		fmt.Fprintln(s.out, "Please reach out to a professional for help immediately.")
	}
	fmt.Fprintln(s.out, rule)
	s.pacer.Pause(3 * time.Second)
}

func (s *Session) resources() (State, error) {
	s.ListTopics()
	choice, err := s.prompt("Which topic are you interested in? ")
	if err != nil {
		return Exited, err
	}
	s.ShowTopic(choice)
	return MenuIdle, nil
}

// ListTopics prints the catalog's topics
func (s *Session) ListTopics() {
	fmt.Fprintln(s.out, "\nI have resources on the following topics:")
	for _, topic := range s.catalog.Topics() {
		fmt.Fprintf(s.out, "- %s\n", capitalize(topic))
	}
}

// ShowTopic prints the articles for topic, or an apology when it is unknown
func (s *Session) ShowTopic(topic string) {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if !s.catalog.Has(topic) {
		fmt.Fprintln(s.out, "I'm sorry, I don't have resources on that topic right now.")
		return
	}

	fmt.Fprintf(s.out, "\nHere are some resources on %s:\n", topic)
	for _, a := range s.catalog.ByTopic(topic) {
		fmt.Fprintf(s.out, "  - Title: %s\n    Summary: %s\n", a.Title, resources.PlainText(a.Summary))
	}
}

// ShowProgress prints a conversational summary of the last n entries
func (s *Session) ShowProgress(n int) {
	if s.moods.Len() == 0 {
		fmt.Fprintln(s.out, "\nI don't have any mood logs for you yet. Try using the 'Check-in' feature first!")
		return
	}

	fmt.Fprintln(s.out, "\nLet's look at your recent progress...")
	s.pacer.Pause(time.Second)

	sum := s.moods.Summarize(n)
	fmt.Fprintf(s.out, "In your last %d entries, you've shared:\n", sum.Total)
	fmt.Fprintf(s.out, "  - %d positive moment(s)\n", sum.Positive)
	fmt.Fprintf(s.out, "  - %d negative moment(s)\n", sum.Negative)

	if sum.Positive > sum.Negative {
		fmt.Fprintln(s.out, "It's great to see more positive moments recently. Keep it up!")
	} else {
		fmt.Fprintln(s.out, "Remember that every day is different, and it's okay to have tough moments.")
	}
	s.pacer.Pause(2 * time.Second)
}

// prompt writes p and reads one line without its line ending. End of input
// with nothing read is errEndOfInput.
func (s *Session) prompt(p string) (string, error) {
	fmt.Fprint(s.out, p)
	line, err := s.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read input: %w", err)
		}
		if line == "" {
			fmt.Fprintln(s.out)
			return "", errEndOfInput
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func affirmative(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "yes", "y":
		return true
	}
	return false
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
