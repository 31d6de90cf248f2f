package main

// Components compiled into the appregister binary. Each installs itself into
// discovery.DefaultCatalog from init and is scanned with --builtin.
import (
	_ "github.com/specialistvlad/appregister/modules/quiz"
)
