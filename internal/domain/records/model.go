package records

import "time"

// Record es un registro médico del paciente. Para el núcleo de compartir
// solo importan ID y OwnerID; el resto se devuelve tal cual al médico.
type Record struct {
	ID      string
	OwnerID string

	Category Category
	Title    string
	Notes    string

	RecordedAt time.Time
	CreatedAt  time.Time
	Status     Status
}
