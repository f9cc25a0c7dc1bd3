package driver

// Driver is season reference data.
type Driver struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Team         string `json:"team"`
	DriverNumber int    `json:"driverNumber"`
	Country      string `json:"country"`
}

func FindByID(items []Driver, id int64) (Driver, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return Driver{}, false
}
