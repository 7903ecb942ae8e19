// Package seed loads reference data: public clinics and a welcome alert.
package seed

import (
	"context"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"swasthsetu/internal/infra"
	"swasthsetu/internal/models/db_models"
	"swasthsetu/internal/repositories"
)

func Clinics() []db_models.Clinic {
	return []db_models.Clinic{
		{
			Name: "Andheri East Urban PHC", Address: "MIDC Road, Andheri East", District: "Mumbai Suburban",
			City: "Mumbai", State: "Maharashtra", Phone: "022-28200000",
			Latitude: 19.1136, Longitude: 72.8697, OpeningHours: "Mon-Sat 09:00-17:00",
			Services: pq.StringArray{"general", "vaccination", "maternal care"}, IsFree: true,
		},
		{
			Name: "Dharavi Health Post", Address: "90 Feet Road, Dharavi", District: "Mumbai City",
			City: "Mumbai", State: "Maharashtra", Phone: "022-24070000",
			Latitude: 19.0402, Longitude: 72.8540, OpeningHours: "Mon-Sat 08:00-14:00",
			Services: pq.StringArray{"general", "tuberculosis screening"}, IsFree: true,
		},
		{
			Name: "Surat Migrant Labour Clinic", Address: "Udhna Udyog Nagar", District: "Surat",
			City: "Surat", State: "Gujarat", Phone: "0261-2270000",
			Latitude: 21.1702, Longitude: 72.8311, OpeningHours: "Daily 10:00-20:00",
			Services: pq.StringArray{"general", "occupational health", "lab"}, IsFree: true,
		},
		{
			Name: "Ernakulam General Hospital", Address: "Hospital Road", District: "Ernakulam",
			City: "Kochi", State: "Kerala", Phone: "0484-2360000",
			Latitude: 9.9816, Longitude: 76.2999, OpeningHours: "24x7",
			Services: pq.StringArray{"emergency", "general", "vaccination", "lab"}, IsFree: true,
		},
		{
			Name: "Perumbavoor Community Health Centre", Address: "AM Road, Perumbavoor", District: "Ernakulam",
			City: "Perumbavoor", State: "Kerala", Phone: "0484-2520000",
			Latitude: 10.1076, Longitude: 76.4760, OpeningHours: "Mon-Sat 08:00-16:00",
			Services: pq.StringArray{"general", "vaccination", "migrant health desk"}, IsFree: true,
		},
		{
			Name: "Gurugram Sector 10 Polyclinic", Address: "Sector 10A", District: "Gurugram",
			City: "Gurugram", State: "Haryana", Phone: "0124-2320000",
			Latitude: 28.4595, Longitude: 77.0266, OpeningHours: "Mon-Fri 09:00-17:00",
			Services: pq.StringArray{"general", "dental", "lab"}, IsFree: false,
		},
	}
}

// WelcomeAlert is the global alert created on first seed.
func WelcomeAlert() db_models.Alert {
	return db_models.Alert{
		Title:    "Welcome to SwasthSetu",
		Message:  "Keep your health profile up to date and carry your Health ID when visiting a clinic.",
		Severity: db_models.AlertInfo,
	}
}

type Result struct {
	Clinics      int
	AlertCreated bool
}

// Run inserts the seed data in one transaction. Existing clinics (by name)
// and an existing global alert with the same title are left alone.
func Run(ctx context.Context, db *gorm.DB, log logrus.FieldLogger) (res Result, err error) {
	tx := infra.StartTransaction(db.WithContext(ctx))
	if tx.Error != nil {
		return res, tx.Error
	}
	defer func() { err = infra.ReleaseTransaction(tx, err) }()

	clinicRepo := repositories.NewClinicRepository(tx)
	for _, clinic := range Clinics() {
		clinic := clinic
		if err = clinicRepo.Upsert(ctx, &clinic); err != nil {
			return res, err
		}
		res.Clinics++
	}

	alert := WelcomeAlert()
	created := tx.Where("title = ? AND migrant_id IS NULL", alert.Title).FirstOrCreate(&alert)
	if err = created.Error; err != nil {
		return res, err
	}
	res.AlertCreated = created.RowsAffected > 0

	log.WithFields(logrus.Fields{
		"clinics":       res.Clinics,
		"alert_created": res.AlertCreated,
	}).Info("seed complete")
	return res, nil
}
