package main

import (
	"fmt"
	"log"
	"os"

	"github.com/launchdeck/internal/config"
	"github.com/launchdeck/internal/db"
	"golang.org/x/crypto/bcrypt"
)

// Creates the first founder account when the database has none. Run once
// after deployment: go run scripts/init_user.go [username] [password]
func main() {
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("failed to initialize database: ", err)
	}

	var count int64
	db.DB.Model(&db.User{}).Count(&count)
	if count > 0 {
		fmt.Println("an account already exists, nothing to do")
		return
	}

	username := "admin"
	password := "admin123"
	if len(os.Args) > 1 {
		username = os.Args[1]
	}
	if len(os.Args) > 2 {
		password = os.Args[2]
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("failed to hash password: ", err)
	}

	user := db.User{
		Username: username,
		Password: string(hashedPassword),
	}

	if err := db.DB.Create(&user).Error; err != nil {
		log.Fatal("failed to create account: ", err)
	}

	fmt.Println("founder account created")
	fmt.Println("username:", username)
	fmt.Println("password:", password)
}
