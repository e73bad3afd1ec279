package model

import "time"

type AttendanceType string

const (
	TypeEntrada AttendanceType = "entrada" // check-in
	TypeSalida  AttendanceType = "salida"  // check-out
)

// Valid reports whether t is one of the two known attendance types.
func (t AttendanceType) Valid() bool {
	return t == TypeEntrada || t == TypeSalida
}

// LocationSource records which fallback strategy produced the coordinate
// of a record, so consumers can tell a real GPS fix apart from the
// hard-coded default.
type LocationSource string

const (
	SourceGPS     LocationSource = "gps"
	SourceNetwork LocationSource = "network"
	SourceDefault LocationSource = "default"
)

type Coordinates struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// AttendanceRecord is one immutable check-in or check-out event. It is
// created once by the registrar and never mutated afterwards.
type AttendanceRecord struct {
	ID             string         `bson:"_id,omitempty" json:"id"`
	UserID         string         `bson:"user_id" json:"user_id"`
	Type           AttendanceType `bson:"type" json:"type"`
	Date           string         `bson:"date" json:"date"` // YYYY-MM-DD, local time
	Time           string         `bson:"time" json:"time"` // HH:MM, stored for display
	Location       Coordinates    `bson:"location" json:"location"`
	PhotoURL       string         `bson:"photo_url" json:"photo_url"`
	LocationValid  bool           `bson:"location_valid" json:"location_valid"`
	LocationSource LocationSource `bson:"location_source" json:"location_source"`
	CreatedAt      time.Time      `bson:"created_at" json:"created_at"`
}

// DailyAttendance is the derived today-projection for one user: at most
// one entrada and one salida per calendar date.
type DailyAttendance struct {
	Entrada *AttendanceRecord `json:"entrada,omitempty"`
	Salida  *AttendanceRecord `json:"salida,omitempty"`
}

// WorkedHours returns the hours between entrada and salida, or 0 while
// either is missing.
func (d DailyAttendance) WorkedHours() float64 {
	if d.Entrada == nil || d.Salida == nil {
		return 0
	}
	return d.Salida.CreatedAt.Sub(d.Entrada.CreatedAt).Hours()
}
