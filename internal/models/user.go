package models

// User - репортер инцидента. Создается лениво при первом появлении
// reporterId в операции создания инцидента, никогда не обновляется и не удаляется.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Database - полная персистентная коллекция, единица load/save хранилища
type Database struct {
	Incidents []*Incident `json:"incidents"`
	Users     []*User     `json:"users"`
}
