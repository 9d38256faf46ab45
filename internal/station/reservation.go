package station

// Reserve marks the displayed station with the given ID as reserved.
// It is a no-op when the station is not displayed, is Occupied, or is already
// reserved. It reports whether the flag changed.
func Reserve(stations []Displayed, id int) bool {
	i := indexOf(stations, id)
	if i < 0 {
		return false
	}

	s := &stations[i]
	if s.Status != StatusAvailable || s.Reserved {
		return false
	}

	s.Reserved = true
	return true
}

// Cancel clears the reservation of the displayed station with the given ID.
// It is a no-op unless that station is currently reserved. It reports whether
// the flag changed.
func Cancel(stations []Displayed, id int) bool {
	i := indexOf(stations, id)
	if i < 0 || !stations[i].Reserved {
		return false
	}

	stations[i].Reserved = false
	return true
}

func indexOf(stations []Displayed, id int) int {
	for i := range stations {
		if stations[i].ID == id {
			return i
		}
	}
	return -1
}
