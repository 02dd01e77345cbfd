package models

// All listet die Modelle in Migrationsreihenfolge.
func All() []any {
	return []any{&User{}, &Category{}, &Product{}, &Review{}, &Order{}, &OrderItem{}}
}
