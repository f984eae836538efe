package game

// Quirk Quiz: twenty agree/disagree statements under a per-question
// countdown. An answer matching the question's key scores a point, and
// so does letting the clock run out. The fewest points wins.

// QuizQuestion is one statement. AgreeScores keys which answer counts
// toward the total.
type QuizQuestion struct {
	ID          int
	Text        string
	AgreeScores bool
}

var QuizQuestions = []QuizQuestion{
	{1, "I alphabetize at least one shelf, drawer or playlist at home.", true},
	{2, "I am fine with eating the same breakfast every single day.", true},
	{3, "I talk to my houseplants, pets or appliances.", true},
	{4, "I have a lucky number and I quietly look out for it.", true},
	{5, "I can leave a notification badge unread for days.", false},
	{6, "I rehearse phone calls before making them.", true},
	{7, "I always sit in the same seat, even when the room is empty.", true},
	{8, "I read the last page of a book first at least once.", true},
	{9, "Surprise changes of plan do not bother me at all.", false},
	{10, "I keep a snack hidden somewhere only I know about.", true},
	{11, "I narrate what I am doing when nobody is around.", true},
	{12, "I double-check a locked door even when I saw myself lock it.", true},
	{13, "I can start a movie without reading anything about it first.", false},
	{14, "I have a strong opinion about the correct way to load cutlery.", true},
	{15, "I collect something most people would not think to collect.", true},
	{16, "I am happy to improvise a recipe without measuring.", false},
	{17, "I sort my wardrobe by color, season or both.", true},
	{18, "I have walked into a room and forgotten why, twice in a row.", true},
	{19, "I can fall asleep anywhere, anytime.", false},
	{20, "I give names to inanimate objects I use often.", true},
}

func (o *Orchestrator) startQuiz(room *Room) {
	room.Quiz = &QuizState{
		Answers: make(map[string]map[int]QuizAnswer),
	}
	room.TotalRounds = len(QuizQuestions)
	room.Round = 1
	room.Phase = PhaseQQQuestion
	o.broadcastQuizQuestion(room)
}

func (o *Orchestrator) broadcastQuizQuestion(room *Room) {
	q := room.Quiz
	question := QuizQuestions[q.Question]
	o.broadcast(room, EvQuizQuestion, QuestionPublic{
		ID:    question.ID,
		Index: q.Question,
		Total: len(QuizQuestions),
		Text:  question.Text,
	})
	o.broadcastState(room)
	o.StartCountdown(room.Code, TimerQuiz, o.cfg.QuizQuestionTime,
		func(secondsLeft int) {
			o.broadcast(room, EvQuizTimer, map[string]any{"secondsLeft": secondsLeft})
		},
		func() {
			o.expireQuizQuestion(room)
		})
	o.scheduleBots(room)
}

func (o *Orchestrator) handleQuizAction(room *Room, p *Player, act ActionPayload) {
	if act.Action != ActQuizAnswer {
		return
	}
	q := room.Quiz
	if room.Phase != PhaseQQQuestion || q == nil {
		return
	}
	// Stale answers from a question that already advanced are dropped.
	if act.QuestionID != QuizQuestions[q.Question].ID || act.Agreed == nil {
		return
	}
	answers := q.Answers[p.ID]
	if answers == nil {
		answers = make(map[int]QuizAnswer)
		q.Answers[p.ID] = answers
	}
	if _, done := answers[q.Question]; done {
		return
	}
	if *act.Agreed {
		answers[q.Question] = QuizAgree
	} else {
		answers[q.Question] = QuizDisagree
	}
	o.broadcastState(room)
	o.checkQuizProgress(room)
}

func (o *Orchestrator) checkQuizProgress(room *Room) {
	q := room.Quiz
	if q == nil || room.Phase != PhaseQQQuestion {
		return
	}
	for _, p := range room.ActivePlayers() {
		if _, done := q.Answers[p.ID][q.Question]; !done {
			return
		}
	}
	o.advanceQuizQuestion(room)
}

// expireQuizQuestion marks everyone still thinking as timed out and
// moves on as if the question completed.
func (o *Orchestrator) expireQuizQuestion(room *Room) {
	q := room.Quiz
	if q == nil || room.Phase != PhaseQQQuestion {
		return
	}
	for _, p := range room.ActivePlayers() {
		answers := q.Answers[p.ID]
		if answers == nil {
			answers = make(map[int]QuizAnswer)
			q.Answers[p.ID] = answers
		}
		if _, done := answers[q.Question]; !done {
			answers[q.Question] = QuizTimeout
		}
	}
	o.advanceQuizQuestion(room)
}

// advanceQuizQuestion scores the closing question and either shows the
// next one or ends the quiz.
func (o *Orchestrator) advanceQuizQuestion(room *Room) {
	q := room.Quiz
	o.CancelTimer(room.Code, TimerQuiz)
	question := QuizQuestions[q.Question]
	for _, p := range room.Players {
		switch q.Answers[p.ID][q.Question] {
		case QuizAgree:
			if question.AgreeScores {
				p.Score++
			}
		case QuizDisagree:
			if !question.AgreeScores {
				p.Score++
			}
		case QuizTimeout:
			p.Score++
		}
	}
	q.Question++
	room.Round = q.Question + 1
	if q.Question >= len(QuizQuestions) {
		o.finishQuiz(room)
		return
	}
	o.broadcastQuizQuestion(room)
}

func (o *Orchestrator) finishQuiz(room *Room) {
	room.Phase = PhaseQQResults
	room.Round = len(QuizQuestions)
	o.broadcast(room, EvQuizResults, map[string]any{
		"rankings": Rankings(room, true),
	})
	o.broadcastState(room)
}
