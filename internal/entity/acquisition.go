package entity

const (
	StatusPending AcquisitionStatus = iota
	StatusTrying
	StatusSucceeded
	StatusExhausted
)

type AcquisitionStatus int

func (s AcquisitionStatus) String() string {
	return [...]string{"Pending", "Trying", "Succeeded", "Exhausted"}[s]
}

// Acquisition is the outcome of one acquisition run for one country.
// Source, Filename, Path and Size are set only when Status is
// StatusSucceeded.
type Acquisition struct {
	Country  Country
	Status   AcquisitionStatus
	Source   string
	Filename string
	Path     string
	Size     int64
}
