package usecase

import (
	"github.com/riskibarqy/porra/internal/domain/player"
	"github.com/riskibarqy/porra/internal/domain/rider"
)

// DefaultRoster returns the pool's players and the season's grid.
func DefaultRoster() Roster {
	return Roster{
		Players: []player.Player{
			{ID: 1, Name: "ANITA"},
			{ID: 2, Name: "APA"},
			{ID: 3, Name: "ASIER"},
			{ID: 4, Name: "BEGO"},
			{ID: 5, Name: "DAVITXI"},
			{ID: 6, Name: "IÑIGO"},
			{ID: 7, Name: "JOANA"},
			{ID: 8, Name: "JORGE"},
			{ID: 9, Name: "MARTA"},
			{ID: 10, Name: "OSKAR"},
			{ID: 11, Name: "TXARLY"},
			{ID: 12, Name: "XABI"},
		},
		Riders: []rider.Rider{
			gridRider(1, "Marc Márquez", 93, "Ducati Corse", "MMarquez"),
			gridRider(2, "Pecco Bagnaia", 63, "Ducati Corse", "Bagnaia"),
			gridRider(3, "Pedro Acosta", 31, "KTM", "Acosta"),
			gridRider(4, "Brad Binder", 33, "KTM", "Binder"),
			gridRider(5, "Jorge Martín", 89, "Aprilia", "Martin"),
			gridRider(6, "Marco Bezzecchi", 72, "Aprilia", "Bezzecchi"),
			gridRider(7, "Joan Mir", 36, "Honda", "Mir"),
			gridRider(8, "Luca Marini", 10, "Honda", "Marini"),
			gridRider(9, "Fabio Quartararo", 20, "Yamaha", "Quartararo"),
			gridRider(10, "Alex Rins", 42, "Yamaha", "Rins"),
			gridRider(11, "Toprak Razgatlioglu", 54, "Pramac", "Toprak"),
			gridRider(12, "Jack Miller", 43, "Pramac", "Miller"),
			gridRider(13, "Raúl Fernández", 25, "Trackhouse", "RFernandez"),
			gridRider(14, "Ai Ogura", 79, "Trackhouse", "Ogura"),
			gridRider(15, "Maverick Viñales", 12, "RB Tech3 KTM", "Vinales"),
			gridRider(16, "Enea Bastianini", 23, "RB Tech3 KTM", "Bastianini"),
			gridRider(17, "Johann Zarco", 5, "LCR-Honda", "Zarco"),
			gridRider(18, "Diogo Moreira", 10, "LCR-Honda", "Moreira"),
			gridRider(19, "Fabio Di Giannantonio", 49, "VR46 Racing Team", "Diggia"),
			gridRider(20, "Franco Morbidelli", 21, "VR46 Racing Team", "Morbidelli"),
			gridRider(21, "Alex Márquez", 73, "Gresini Racing", "AMarquez"),
			gridRider(22, "Fermín Aldeguer", 81, "Gresini Racing", "Aldeguer"),
		},
	}
}

func gridRider(id int64, name string, number int, team, seed string) rider.Rider {
	return rider.Rider{
		ID:       id,
		Name:     name,
		Number:   number,
		Team:     team,
		ImageURL: "https://picsum.photos/seed/" + seed + "/200",
	}
}
