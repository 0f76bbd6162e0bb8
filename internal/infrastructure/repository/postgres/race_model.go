package postgres

import (
	"database/sql"
	"time"

	"github.com/pitwall/gridbet/internal/domain/race"
)

type raceTableModel struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	Date         time.Time      `db:"date"`
	BetDeadline  time.Time      `db:"bet_deadline"`
	Season       int            `db:"season"`
	IsSprint     bool           `db:"is_sprint"`
	CountryName  string         `db:"country_name"`
	FlagFileName string         `db:"flag_file_name"`
	Status       string         `db:"status"`
	P1           sql.NullString `db:"p1"`
	P2           sql.NullString `db:"p2"`
	P3           sql.NullString `db:"p3"`
	P4           sql.NullString `db:"p4"`
	P5           sql.NullString `db:"p5"`
	P6           sql.NullString `db:"p6"`
	P7           sql.NullString `db:"p7"`
	P8           sql.NullString `db:"p8"`
	P9           sql.NullString `db:"p9"`
	P10          sql.NullString `db:"p10"`
	P11          sql.NullString `db:"p11"`
	P12          sql.NullString `db:"p12"`
	PolePosition sql.NullString `db:"bonus_pole_position"`
	FastestLap   sql.NullString `db:"bonus_fastest_lap"`
	DriverOfDay  sql.NullString `db:"bonus_driver_of_the_day"`
	NoDNFs       sql.NullBool   `db:"bonus_no_dnfs"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func raceToTableModel(r race.Race) raceTableModel {
	model := raceTableModel{
		ID:           r.ID,
		Name:         r.Name,
		Date:         r.Date,
		BetDeadline:  r.BetDeadline,
		Season:       r.Season,
		IsSprint:     r.IsSprint,
		CountryName:  r.CountryName,
		FlagFileName: r.FlagFileName,
		Status:       r.Status,
		PolePosition: nullString(r.Results.Bonus.PolePosition),
		FastestLap:   nullString(r.Results.Bonus.FastestLap),
		DriverOfDay:  nullString(r.Results.Bonus.DriverOfTheDay),
		NoDNFs:       nullBool(r.Results.Bonus.NoDNFs),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}

	slots := []*sql.NullString{
		&model.P1, &model.P2, &model.P3, &model.P4, &model.P5, &model.P6,
		&model.P7, &model.P8, &model.P9, &model.P10, &model.P11, &model.P12,
	}
	for pos, slot := range slots {
		*slot = nullString(r.Results.Positions[pos+1])
	}

	return model
}

func (m raceTableModel) toDomain() race.Race {
	positions := make(map[int]string, race.ResultPositions)
	slots := []sql.NullString{
		m.P1, m.P2, m.P3, m.P4, m.P5, m.P6,
		m.P7, m.P8, m.P9, m.P10, m.P11, m.P12,
	}
	for pos, slot := range slots {
		if slot.Valid && slot.String != "" {
			positions[pos+1] = slot.String
		}
	}

	return race.Race{
		ID:           m.ID,
		Name:         m.Name,
		Date:         m.Date,
		BetDeadline:  m.BetDeadline,
		Season:       m.Season,
		IsSprint:     m.IsSprint,
		CountryName:  m.CountryName,
		FlagFileName: m.FlagFileName,
		Status:       m.Status,
		Results: race.Results{
			Positions: positions,
			Bonus: race.BonusResults{
				PolePosition:   fromNullString(m.PolePosition),
				FastestLap:     fromNullString(m.FastestLap),
				DriverOfTheDay: fromNullString(m.DriverOfDay),
				NoDNFs:         fromNullBool(m.NoDNFs),
			},
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
