package model

// ValidLocation is a geofence: a named coordinate plus the radius, in
// meters, inside which attendance may be registered.
type ValidLocation struct {
	ID            string  `bson:"_id,omitempty" json:"id"`
	Name          string  `bson:"name" json:"name"`
	Latitude      float64 `bson:"latitude" json:"latitude"`
	Longitude     float64 `bson:"longitude" json:"longitude"`
	AllowedRadius float64 `bson:"allowed_radius_meters" json:"allowed_radius_meters"`
}
