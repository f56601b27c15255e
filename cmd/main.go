package main

import (
	"log"
	"os"

	"github.com/spf13/viper"

	"github.com/chenBenjamin97/football-analyzer/pkg/api"
	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	utils.SetConfigDefaults()
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error: Could not read config file, got '%v'", err)
	}

	//create missing directories from config file, project's data root first
	if err := os.MkdirAll(viper.GetString("directory.root"), 0766); err != nil {
		log.Printf("Error Creating '%s' directory, got '%v'", viper.GetString("directory.root"), err)
	}

	for _, key := range []string{"source", "ready", "temp", "stubs", "stats"} {
		dir := viper.GetString("directory." + key)
		if err := os.MkdirAll(dir, 0766); err != nil {
			log.Printf("Error Creating '%s' directory, got '%v'", dir, err)
		}
	}

	if viper.GetString("video.prod_format") == "" || viper.GetString("detector.script") == "" || viper.GetString("detector.model") == "" {
		log.Fatalf("Error: Missing critical configurations")
	}

	r := api.SetRouter()
	if err := r.Run(":" + viper.GetString("http.port")); err != nil {
		log.Fatalf("Error: Got '%v'", err)
	}
}
