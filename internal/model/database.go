package model

// Database is the whole document store: every user and every game,
// persisted as a single JSON file and always loaded and rewritten as
// one unit. Partial updates are never persisted independently.
type Database struct {
	Users []User `json:"users"`
	Games []Game `json:"games"`
}

// NewDatabase returns an empty database, the state of a first run
func NewDatabase() *Database {
	return &Database{
		Users: []User{},
		Games: []Game{},
	}
}

// Normalize upgrades records written by older versions in place
func (db *Database) Normalize() {
	if db.Users == nil {
		db.Users = []User{}
	}
	if db.Games == nil {
		db.Games = []Game{}
	}
	for i := range db.Users {
		db.Users[i].Normalize()
	}
}
