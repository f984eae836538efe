package game

// Variant identifies which party game a room is running.
type Variant string

const (
	VariantGnarlyLibs Variant = "gnarly-libs"
	VariantPatented   Variant = "dubiously-patented"
	VariantQuirkQuiz  Variant = "quirk-quiz"
	VariantScribble   Variant = "scribble-scrabble"
	VariantCalamity   Variant = "card-calamity"
)

func ValidVariant(v Variant) bool {
	switch v {
	case VariantGnarlyLibs, VariantPatented, VariantQuirkQuiz, VariantScribble, VariantCalamity:
		return true
	}
	return false
}

// Phase is the current state of a room's state machine. Every variant
// owns a closed set of tags; LOBBY and END are shared.
type Phase string

const (
	PhaseLobby Phase = "LOBBY"
	PhaseEnd   Phase = "END"

	// Gnarly Libs
	PhaseGLPromptSubmit Phase = "GL_PROMPT_SUBMIT"
	PhaseGLAnswer       Phase = "GL_ANSWER"
	PhaseGLVoting       Phase = "GL_VOTING"
	PhaseGLResults      Phase = "GL_RESULTS"

	// Dubiously Patented
	PhaseDPProblemSubmit Phase = "DP_PROBLEM_SUBMIT"
	PhaseDPPick          Phase = "DP_PICK"
	PhaseDPDrawing       Phase = "DP_DRAWING"
	PhaseDPPresenting    Phase = "DP_PRESENTING"
	PhaseDPInvesting     Phase = "DP_INVESTING"
	PhaseDPResults       Phase = "DP_RESULTS"

	// Quirk Quiz
	PhaseQQQuestion Phase = "QQ_QUESTION"
	PhaseQQResults  Phase = "QQ_RESULTS"

	// Scribble Scrabble
	PhaseSCWordPick     Phase = "SC_WORD_PICK"
	PhaseSCDrawing      Phase = "SC_DRAWING"
	PhaseSCRoundResults Phase = "SC_ROUND_RESULTS"

	// Card Calamity
	PhaseCCPlaying   Phase = "CC_PLAYING"
	PhaseCCPickColor Phase = "CC_PICK_COLOR"
	PhaseCCResults   Phase = "CC_RESULTS"
)

// Terminal reports whether a phase is one the controller can advance out
// of with NEXT_ROUND or PLAY_AGAIN.
func (p Phase) Terminal() bool {
	switch p {
	case PhaseGLResults, PhaseDPResults, PhaseQQResults, PhaseCCResults, PhaseEnd:
		return true
	}
	return false
}
