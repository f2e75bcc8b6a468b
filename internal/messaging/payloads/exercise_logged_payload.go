package payloads

// ExerciseLoggedPayload представляет событие о записанном упражнении,
// публикуемое в очередь после успешного сохранения.
type ExerciseLoggedPayload struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}
