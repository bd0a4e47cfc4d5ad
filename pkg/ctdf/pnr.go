package ctdf

type PNRStatus struct {
	PNR               string      `json:"pnr" groups:"basic"`
	TrainNumber       string      `json:"trainNumber" groups:"basic"`
	TrainName         string      `json:"trainName" groups:"basic"`
	JourneyDate       string      `json:"journeyDate" groups:"basic"`
	BoardingPoint     string      `json:"boardingPoint" groups:"basic"`
	BoardingPointName string      `json:"boardingPointName" groups:"detailed"`
	Destination       string      `json:"destination" groups:"basic"`
	DestinationName   string      `json:"destinationName" groups:"detailed"`
	ReservationUpTo   string      `json:"reservationUpTo" groups:"detailed"`
	ClassType         string      `json:"classType" groups:"basic"`
	ChartPrepared     bool        `json:"chartPrepared" groups:"basic"`
	Passengers        []Passenger `json:"passengers" groups:"basic"`
}

type Passenger struct {
	Number        int    `json:"number" groups:"basic"`
	BookingStatus string `json:"bookingStatus" groups:"basic"`
	CurrentStatus string `json:"currentStatus" groups:"basic"`
	CoachPosition *int   `json:"coachPosition,omitempty" groups:"detailed"`
}

type PNRCheckResult struct {
	PNR     string     `json:"pnr"`
	Success bool       `json:"success"`
	Data    *PNRStatus `json:"data,omitempty"`
	Error   string     `json:"error,omitempty"`
}

// IsValidPNR reports whether pnr is a 10 digit PNR number.
func IsValidPNR(pnr string) bool {
	if len(pnr) != 10 {
		return false
	}

	for i := 0; i < len(pnr); i++ {
		if pnr[i] < '0' || pnr[i] > '9' {
			return false
		}
	}

	return true
}
