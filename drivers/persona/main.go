package main

import (
	tappersona "github.com/datazip-inc/tap-persona"
	driver "github.com/datazip-inc/tap-persona/drivers/persona/internal"
)

func main() {
	tappersona.RegisterDriver(&driver.Persona{})
}
