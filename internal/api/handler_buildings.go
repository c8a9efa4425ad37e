package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"open-rooms-backend/internal/clock"
	"open-rooms-backend/internal/model"
)

// BuildingResponse represents the API response for a single building.
type BuildingResponse struct {
	Name       string                     `json:"name"`
	Latitude   float64                    `json:"latitude"`
	Longitude  float64                    `json:"longitude"`
	TotalRooms int64                      `json:"totalRooms"`
	Hours      map[string]*hoursOfDayJSON `json:"hours"`
}

type hoursOfDayJSON struct {
	Open  clock.TimeOfDay `json:"open"`
	Close clock.TimeOfDay `json:"close"`
}

// GetBuildings handles the GET /api/buildings request.
func GetBuildings(db *gorm.DB) gin.HandlerFunc {
	days := []struct {
		name string
		code clock.Weekday
	}{
		{"monday", clock.Monday},
		{"tuesday", clock.Tuesday},
		{"wednesday", clock.Wednesday},
		{"thursday", clock.Thursday},
		{"friday", clock.Friday},
		{"saturday", clock.Saturday},
		{"sunday", clock.Sunday},
	}

	return func(c *gin.Context) {
		var buildings []model.Building
		if err := db.Order("name").Find(&buildings).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve buildings"})
			return
		}

		type aggRow struct {
			BuildingName string
			TotalRooms   int64
		}
		var aggs []aggRow
		if err := db.
			Model(&model.Room{}).
			Select("building_name, COUNT(*) as total_rooms").
			Group("building_name").
			Scan(&aggs).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate rooms"})
			return
		}

		aggMap := make(map[string]int64, len(aggs))
		for _, a := range aggs {
			aggMap[a.BuildingName] = a.TotalRooms
		}

		responses := make([]BuildingResponse, 0, len(buildings))
		for i := range buildings {
			b := &buildings[i]
			hours := make(map[string]*hoursOfDayJSON, len(days))
			for _, d := range days {
				if open, close, ok := b.HoursOn(d.code); ok {
					hours[d.name] = &hoursOfDayJSON{Open: open, Close: close}
				} else {
					hours[d.name] = nil
				}
			}
			responses = append(responses, BuildingResponse{
				Name:       b.Name,
				Latitude:   b.Latitude,
				Longitude:  b.Longitude,
				TotalRooms: aggMap[b.Name],
				Hours:      hours,
			})
		}
		c.JSON(http.StatusOK, responses)
	}
}
