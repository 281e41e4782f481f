package entity

import (
	"time"
)

// CarouselImage is an ordered hero image shown on the public home page.
// The collection is read-only for this service.
type CarouselImage struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	URL         string    `bson:"url" json:"url"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Order       int       `bson:"order" json:"order"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// Pilot is a roster entry shown on the public home page.
type Pilot struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Position  string    `bson:"position" json:"position"`
	PhotoURL  string    `bson:"photoURL" json:"photoURL"`
	Order     int       `bson:"order" json:"order"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
