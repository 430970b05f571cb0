package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/cpu-warriors/so-emulador/io/cmd/api"
	"github.com/cpu-warriors/so-emulador/utils/log"
)

func main() {
	configFile := "./configs/config.json"
	if len(os.Args) > 1 {
		configFile = os.Args[1]
	}

	cfg, err := api.CargarConfig(configFile)
	if err != nil {
		panic(err)
	}
	h := api.NewHandler(cfg)

	h.Log.Debug("Inicializando interfaz IO",
		log.IntAttr("puerto", cfg.PortIo),
		log.IntAttr("io_delay", cfg.IoDelay),
	)

	//Kernel --> IO (usleep)
	//IO --> Kernel (peticion-finalizada)
	address := fmt.Sprintf("%s:%d", cfg.IpIo, cfg.PortIo)
	if err := http.ListenAndServe(address, h.Router()); err != nil {
		h.Log.Error("Error starting server", log.ErrAttr(err))
		panic(err)
	}
}
