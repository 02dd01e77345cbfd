package services

import "errors"

var (
	// ErrNotFound wird geliefert, wenn ein referenzierter Datensatz fehlt.
	ErrNotFound = errors.New("not found")
	// ErrUserExists wird bei der Registrierung einer vergebenen E-Mail geliefert.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound wird beim Login einer unbekannten E-Mail geliefert.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials steht für ein falsches Passwort.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken steht für ein ungültiges oder abgelaufenes Token.
	ErrInvalidToken = errors.New("invalid token")
	// ErrProductOrdered wird geliefert, wenn ein bestelltes Produkt gelöscht werden soll.
	ErrProductOrdered = errors.New("product is part of an order and cannot be deleted")
	// ErrInvalidInput steht für fachlich ungültige Eingaben.
	ErrInvalidInput = errors.New("invalid input")
)
