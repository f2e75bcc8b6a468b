package domain

// User представляет модель пользователя трекера.
// Соответствует коллекции/таблице 'users' в хранилище.
// Уникальность username — соглашение, а не ограничение хранилища:
// перед вставкой выполняется поиск существующей записи (см. usecase).
type User struct {
	ID       string `json:"id" db:"id" gorm:"primaryKey;column:id"`
	Username string `json:"username" db:"username" gorm:"column:username"`
}

func (User) TableName() string {
	return "users"
}
