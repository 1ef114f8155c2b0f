package models

// Task represents a single task/contact record.
type Task struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Phone  string `json:"phone"`
	Gender string `json:"gender"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
