package ctdf

type Station struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	Latitude   *string `json:"latitude"`
	Longitude  *string `json:"longitude"`
	Zone       *string `json:"zone"`
	IsJunction bool    `json:"isJunction"`
}

type StationSearchResult struct {
	Code string  `json:"code"`
	Name string  `json:"name"`
	City *string `json:"city"`
}

type StationTrain struct {
	TrainNumber   string  `json:"trainNumber"`
	TrainName     string  `json:"trainName"`
	ArrivalTime   *string `json:"arrivalTime"`
	DepartureTime *string `json:"departureTime"`
	Platform      *string `json:"platform"`
}

type StationArrival struct {
	TrainNumber   string  `json:"trainNumber"`
	TrainName     string  `json:"trainName"`
	ArrivalTime   *string `json:"arrivalTime"`
	Platform      *string `json:"platform"`
	SourceStation string  `json:"sourceStation"`
}

type StationDeparture struct {
	TrainNumber        string  `json:"trainNumber"`
	TrainName          string  `json:"trainName"`
	DepartureTime      *string `json:"departureTime"`
	Platform           *string `json:"platform"`
	DestinationStation string  `json:"destinationStation"`
}
