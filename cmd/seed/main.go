package main

import (
	"fmt"
	"math/rand"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"trustrate/internal/database"
	"trustrate/internal/domain/auth"
	"trustrate/internal/domain/company"
	"trustrate/internal/domain/fraud"
	"trustrate/internal/domain/review"
)

func main() {
	db, err := database.Connect("trustrate.db")
	if err != nil {
		log.Fatal("DB connection failed: ", err)
	}

	log.Info("running AutoMigrate")
	if err := db.AutoMigrate(
		&auth.User{},
		&company.Company{},
		&review.Review{},
		&review.History{},
		&fraud.AuditEntry{},
	); err != nil {
		log.Fatal("AutoMigrate failed: ", err)
	}

	// cleanup old data, children first
	log.Info("cleaning old data")
	db.Exec("DELETE FROM fraud_audit_entries")
	db.Exec("DELETE FROM review_history")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM companies")
	db.Exec("DELETE FROM users")

	log.Info("creating users")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := auth.User{
		Email:        "admin@trustrate.io",
		PasswordHash: string(adminHash),
		Name:         "Admin",
		Role:         auth.RoleAdmin,
	}
	db.Create(&admin)

	modHash, _ := bcrypt.GenerateFromPassword([]byte("moderator123"), bcrypt.DefaultCost)
	moderator := auth.User{
		Email:        "moderator@trustrate.io",
		PasswordHash: string(modHash),
		Name:         "Moderator",
		Role:         auth.RoleModerator,
	}
	db.Create(&moderator)

	var users []auth.User
	for i := 1; i <= 5; i++ {
		hash, _ := bcrypt.GenerateFromPassword([]byte("user123"), bcrypt.DefaultCost)
		u := auth.User{
			Email:        fmt.Sprintf("user%d@example.com", i),
			PasswordHash: string(hash),
			Name:         fmt.Sprintf("User %d", i),
			Role:         auth.RoleUser,
		}
		db.Create(&u)
		users = append(users, u)
	}

	log.Info("creating companies")
	owner := users[0]
	var companies []company.Company
	names := []string{"Northwind Movers", "Acme Cleaning", "Blue Harbor Dental"}
	for i, name := range names {
		co := company.Company{
			OwnerID: owner.ID,
			Name:    name,
			Slug:    fmt.Sprintf("company-%d", i+1),
		}
		db.Create(&co)
		companies = append(companies, co)
	}

	log.Info("creating reviews")
	titles := []string{"Great experience", "Average service", "Would recommend"}
	bodies := []string{
		"The crew arrived on time and handled everything with care, start to finish.",
		"Service was okay but the scheduling took longer than expected to sort out.",
		"Friendly staff and fair prices, the whole process went smoothly for us.",
	}
	for i, co := range companies {
		for j, u := range users[1:] {
			four := 4
			rv := review.Review{
				CompanyID:     co.ID,
				UserID:        u.ID,
				Title:         titles[(i+j)%len(titles)],
				Content:       bodies[(i+j)%len(bodies)],
				Rating:        3 + rand.Intn(3),
				ServiceRating: &four,
				PriceRating:   &four,
				SpeedRating:   &four,
				QualityRating: &four,
				Status:        review.StatusApproved,
				SubmitIP:      fmt.Sprintf("192.0.2.%d", 10+j),
			}
			db.Create(&rv)
		}
	}

	log.Info("seed complete")
	log.Info("admin: admin@trustrate.io / admin123")
	log.Info("moderator: moderator@trustrate.io / moderator123")
}
