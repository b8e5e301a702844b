package models

import "time"

// Kitten represents a pet record owned by exactly one user
type Kitten struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Color     string    `json:"color"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// KittenRequest is the body of POST /kittens
type KittenRequest struct {
	Name  string `json:"name"`
	Age   *int   `json:"age"`
	Color string `json:"color"`
}

// KittenView is the public shape returned by GET /kittens/{id}
type KittenView struct {
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Color string `json:"color"`
}

// KittenCreated is returned by POST /kittens and GET /kittens
type KittenCreated struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Color string `json:"color"`
}

// View strips identifiers and ownership from the record
func (k *Kitten) View() KittenView {
	return KittenView{Name: k.Name, Age: k.Age, Color: k.Color}
}

// Summary returns the record with its id but without ownership
func (k *Kitten) Summary() KittenCreated {
	return KittenCreated{ID: k.ID, Name: k.Name, Age: k.Age, Color: k.Color}
}
