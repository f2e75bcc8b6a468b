package domain

// DateRange — диапазон дат для фильтрации журнала (границы включительно).
// Пустая граница означает отсутствие ограничения с этой стороны.
type DateRange struct {
	From string
	To   string
}

// LogFilter — фильтр выборки упражнений. Каждый бэкенд хранилища
// транслирует его в собственное выражение запроса.
type LogFilter struct {
	Username string
	Date     *DateRange
	Limit    int // 0 — без ограничения
}

// NewDateRange строит диапазон дат из необязательных параметров запроса.
// Если обе границы пусты, возвращает nil (диапазон не ограничен).
func NewDateRange(from, to string) *DateRange {
	if from == "" && to == "" {
		return nil
	}
	return &DateRange{From: from, To: to}
}

// NewLogFilter строит фильтр журнала: username всегда, диапазон дат —
// только если задан from или to.
func NewLogFilter(username, from, to string, limit int) LogFilter {
	return LogFilter{
		Username: username,
		Date:     NewDateRange(from, to),
		Limit:    limit,
	}
}
