package handler

import (
	"github.com/Shashankvwali/VoltGo/internal/api/models"
	"github.com/Shashankvwali/VoltGo/internal/station"
)

func toStation(r station.Record) models.Station {
	return models.Station{
		ID:      r.ID,
		Name:    r.Name,
		Address: r.Address,
		Status:  string(r.Status),
		ETA:     r.ETA,
	}
}

func toPresentation(p station.Presentation) models.Presentation {
	return models.Presentation{
		Badge:          string(p.Badge),
		ReserveEnabled: p.ReserveEnabled,
		ReserveLabel:   p.ReserveLabel,
		ReserveTone:    string(p.ReserveTone),
		CancelVisible:  p.CancelVisible,
		ETALabel:       p.ETALabel,
	}
}

func toView(s station.Snapshot) models.View {
	stations := make([]models.DisplayedStation, len(s.Stations))
	for i, d := range s.Stations {
		stations[i] = models.DisplayedStation{
			Station:      toStation(d.Record),
			Reserved:     d.Reserved,
			Presentation: toPresentation(station.Present(d)),
		}
	}

	return models.View{
		Query:    s.Query,
		Message:  s.Message,
		Stations: stations,
	}
}
