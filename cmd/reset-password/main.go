package main

import (
	"flag"
	"log"

	"go-tailorshop/internal/model"
	"go-tailorshop/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Operator tool for resetting a staff password when an admin is locked out.
func main() {
	shopCode := flag.String("shop", "", "shop code (e.g. RAJ48221)")
	role := flag.String("role", "admin", "staff role: admin, tailor or cutting_master")
	username := flag.String("username", "", "staff username")
	password := flag.String("password", "", "new password (min 6 characters)")
	flag.Parse()

	if *shopCode == "" || *username == "" || *password == "" {
		log.Fatal("usage: reset-password -shop <code> -role <role> -username <name> -password <new>")
	}
	if len(*password) < 6 {
		log.Fatal("password must be at least 6 characters")
	}
	staffRole := model.Role(*role)
	if !staffRole.Valid() {
		log.Fatalf("unknown role %q", *role)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	db := database.ConnectDB()

	var shop model.Shop
	if err := db.Where("shop_code = ?", *shopCode).First(&shop).Error; err != nil {
		log.Fatalf("shop %s not found: %v", *shopCode, err)
	}

	var staff model.Staff
	err := db.Where("shop_id = ? AND role = ? AND username = ?", shop.ID, staffRole, *username).
		First(&staff).Error
	if err != nil {
		log.Fatalf("%s %q not found in shop %s: %v", staffRole, *username, shop.ShopName, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	if err := db.Model(&staff).Update("password_hash", string(hashed)).Error; err != nil {
		log.Fatalf("failed to update password: %v", err)
	}

	log.Printf("Password for %s %q in shop %s has been reset", staffRole, *username, shop.ShopName)
}
