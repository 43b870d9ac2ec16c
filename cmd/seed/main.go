package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ikkim/realty-review-backend/config"
	"github.com/ikkim/realty-review-backend/internal/db"
	"github.com/ikkim/realty-review-backend/pkg/util"
)

const tokenExpiry = 7 * 24 * time.Hour

func main() {
	// 설정 로드
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// DB 연결
	database, err := db.Open(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close(database)

	if err := db.Migrate(database); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	data, err := db.Seed(database)
	if err != nil {
		log.Fatal("Failed to seed database:", err)
	}

	fmt.Printf("Company: %s (id=%d)\n\n", data.Company.Name, data.Company.ID)

	// 개발용 토큰 출력
	profiles := []struct {
		role string
		id   uint
	}{
		{"admin", data.Admin.ID},
		{"representative", data.Representative.ID},
		{"member", data.Member.ID},
	}
	for _, p := range profiles {
		token, err := util.GenerateToken(p.id, cfg.JWT.Secret, tokenExpiry)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to generate token for %s: %v\n", p.role, err)
			os.Exit(1)
		}
		fmt.Printf("%-15s id=%d\n  %s\n", p.role, p.id, token)
	}
}
