package entity

// Country binds a user-facing country name to the slug its upstream
// source uses for folder and file names. Created once per resolution,
// immutable afterwards.
type Country struct {
	DisplayName string
	Slug        string
}
