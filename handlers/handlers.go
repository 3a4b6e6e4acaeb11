package handlers

import (
	"github.com/KESA-RIKIN/zero-hunger-platform/lifecycle"
)

var donationStore lifecycle.Store

// SetStore wires the donation record store the handlers operate on. main
// installs the gorm store at boot; tests may install either store.
func SetStore(s lifecycle.Store) {
	donationStore = s
}

func ctrl() *lifecycle.Controller {
	return lifecycle.NewController(donationStore)
}
