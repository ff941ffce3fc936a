package jwt

import "golang.org/x/crypto/bcrypt"

func NewStaff(staff RegisterStaff) (Staff, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(staff.Password), 10)
	if err != nil {
		return Staff{}, err
	}

	return Staff{
		Email:        staff.Email,
		PasswordHash: string(hashedPassword),
	}, nil
}

func ValidatePassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
