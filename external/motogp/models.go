package motogp

type apiSeason struct {
	ID      string  `json:"id"`
	Name    *string `json:"name"`
	Year    int     `json:"year"`
	Current bool    `json:"current"`
}

type apiCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type apiNamed struct {
	Name string `json:"name"`
}

type apiCountry struct {
	ISO  string `json:"iso"`
	Name string `json:"name"`
}

type apiEvent struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	SponsoredName string     `json:"sponsored_name"`
	DateStart     string     `json:"date_start"`
	DateEnd       string     `json:"date_end"`
	Circuit       apiNamed   `json:"circuit"`
	Country       apiCountry `json:"country"`
	Test          bool       `json:"test"`
	Status        string     `json:"status"`
}

type apiSession struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Number *int   `json:"number"`
	Date   string `json:"date"`
	Status string `json:"status"`
}

type apiRider struct {
	FullName string     `json:"full_name"`
	Number   int        `json:"number"`
	Country  apiCountry `json:"country"`
}

type apiLap struct {
	Time   string `json:"time"`
	Number int    `json:"number"`
}

type apiGap struct {
	First string `json:"first"`
}

type apiClassification struct {
	Position    int      `json:"position"`
	Rider       apiRider `json:"rider"`
	Team        apiNamed `json:"team"`
	Constructor apiNamed `json:"constructor"`
	BestLap     *apiLap  `json:"best_lap"`
	TotalLaps   int      `json:"total_laps"`
	Gap         apiGap   `json:"gap"`
	Time        string   `json:"time"`
	Points      *float64 `json:"points"`
	Status      string   `json:"status"`
}

type apiClassificationResponse struct {
	Classification []apiClassification `json:"classification"`
}

type apiStanding struct {
	Position    int      `json:"position"`
	Rider       apiRider `json:"rider"`
	Team        apiNamed `json:"team"`
	Constructor apiNamed `json:"constructor"`
	Points      float64  `json:"points"`
}

type apiStandingResponse struct {
	Classification []apiStanding `json:"classification"`
}
