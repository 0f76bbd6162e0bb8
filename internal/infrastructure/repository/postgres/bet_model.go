package postgres

import (
	"database/sql"
	"time"

	"github.com/pitwall/gridbet/internal/domain/bet"
)

type betTableModel struct {
	ID            string         `db:"id"`
	UserID        string         `db:"user_id"`
	RaceID        string         `db:"race_id"`
	RaceName      string         `db:"race_name"`
	Season        int            `db:"season"`
	P1            sql.NullString `db:"p1"`
	P2            sql.NullString `db:"p2"`
	P3            sql.NullString `db:"p3"`
	P4            sql.NullString `db:"p4"`
	P5            sql.NullString `db:"p5"`
	P6            sql.NullString `db:"p6"`
	P7            sql.NullString `db:"p7"`
	P8            sql.NullString `db:"p8"`
	P9            sql.NullString `db:"p9"`
	P10           sql.NullString `db:"p10"`
	PolePosition  string         `db:"bonus_pole_position"`
	FastestLap    string         `db:"bonus_fastest_lap"`
	DriverOfDay   string         `db:"bonus_driver_of_the_day"`
	NoDNFs        bool           `db:"bonus_no_dnfs"`
	Status        string         `db:"status"`
	AwardedPoints int            `db:"awarded_points"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func betToTableModel(b bet.Bet) betTableModel {
	model := betTableModel{
		ID:            b.ID,
		UserID:        b.UserID,
		RaceID:        b.RaceID,
		RaceName:      b.RaceName,
		Season:        b.Season,
		PolePosition:  b.Predictions.Bonus.PolePosition,
		FastestLap:    b.Predictions.Bonus.FastestLap,
		DriverOfDay:   b.Predictions.Bonus.DriverOfTheDay,
		NoDNFs:        b.Predictions.Bonus.NoDNFs,
		Status:        b.Status,
		AwardedPoints: b.AwardedPoints,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}

	slots := []*sql.NullString{
		&model.P1, &model.P2, &model.P3, &model.P4, &model.P5,
		&model.P6, &model.P7, &model.P8, &model.P9, &model.P10,
	}
	for pos, slot := range slots {
		*slot = nullString(b.Predictions.Positions[pos+1])
	}

	return model
}

func (m betTableModel) toDomain() bet.Bet {
	positions := make(map[int]string, bet.PredictedPositions)
	slots := []sql.NullString{
		m.P1, m.P2, m.P3, m.P4, m.P5,
		m.P6, m.P7, m.P8, m.P9, m.P10,
	}
	for pos, slot := range slots {
		if slot.Valid && slot.String != "" {
			positions[pos+1] = slot.String
		}
	}

	return bet.Bet{
		ID:       m.ID,
		UserID:   m.UserID,
		RaceID:   m.RaceID,
		RaceName: m.RaceName,
		Season:   m.Season,
		Predictions: bet.Predictions{
			Positions: positions,
			Bonus: bet.BonusPredictions{
				PolePosition:   m.PolePosition,
				FastestLap:     m.FastestLap,
				DriverOfTheDay: m.DriverOfDay,
				NoDNFs:         m.NoDNFs,
			},
		},
		Status:        m.Status,
		AwardedPoints: m.AwardedPoints,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
