package store

type Project struct {
	ID          string
	Name        string
	Description string
	Status      string
}
