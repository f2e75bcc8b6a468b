package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout — формат хранения дат. Строки в этом формате
// сортируются лексикографически так же, как календарные даты.
const DateLayout = "2006-01-02"

// DisplayDateLayout — человекочитаемый формат даты для ответов API.
const DisplayDateLayout = "Mon Jan 02 2006"

// Exercise представляет модель записи об упражнении.
// Соответствует коллекции/таблице 'exercises' в хранилище.
// Связь с пользователем — по username, а не по id (логический внешний ключ,
// хранилищем не контролируется).
type Exercise struct {
	ID          string `json:"id" db:"id" gorm:"primaryKey;column:id"`
	Username    string `json:"username" db:"username" gorm:"column:username"`
	Description string `json:"description" db:"description" gorm:"column:description"`
	Duration    int    `json:"duration" db:"duration" gorm:"column:duration"`
	Date        string `json:"date" db:"date" gorm:"column:date"`
}

func (Exercise) TableName() string {
	return "exercises"
}

// LogEntry — одна запись журнала упражнений в ответе API
// (без идентификатора записи, дата в человекочитаемом виде).
type LogEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// ExerciseLog — журнал упражнений пользователя.
type ExerciseLog struct {
	Username string     `json:"username"`
	ID       string     `json:"id"`
	Count    int        `json:"count"`
	Log      []LogEntry `json:"log"`
}

// ExerciseResult — ответ на создание упражнения.
// ID здесь — идентификатор пользователя, как в журнале.
type ExerciseResult struct {
	Username    string `json:"username"`
	ID          string `json:"id"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Duration    int    `json:"duration"`
}

// inputDateLayouts — форматы дат, принимаемые на входе.
// Любой из них нормализуется в DateLayout перед сохранением, иначе
// лексикографические фильтры from/to пропускали бы запись.
var inputDateLayouts = []string{
	DateLayout,
	"2006-1-2",
	DisplayDateLayout,
	"Jan 02 2006",
	"Jan 2 2006",
	"January 2 2006",
	"01/02/2006",
}

// NormalizeDate приводит введённую дату к формату хранения DateLayout.
func NormalizeDate(input string) (string, error) {
	s := strings.TrimSpace(input)
	for _, layout := range inputDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateLayout), nil
		}
	}
	return "", fmt.Errorf("unrecognized date %q", input)
}

// Today возвращает текущую дату (UTC) в формате хранения.
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}

// DisplayDate преобразует хранимую дату в человекочитаемый вид.
// Нераспознанная строка возвращается как есть.
func DisplayDate(stored string) string {
	t, err := time.Parse(DateLayout, stored)
	if err != nil {
		return stored
	}
	return t.Format(DisplayDateLayout)
}
