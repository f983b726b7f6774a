package main

import (
	_ "github.com/vedannt004/careerprep-chatbot/docs"
	"github.com/vedannt004/careerprep-chatbot/internal/bootstrap"
)

// @title CareerPrep API
// @version 1.0.0
// @description Mock interview coaching, resume ATS scoring and speech endpoints

// @BasePath /

func main() {
	bootstrap.Run()
}
