// trainrouter fits the call-routing classifier on the built-in corpus
// and serializes it to disk. It is a standalone offline tool with no
// link to the HTTP service.
package main

import (
	"os"

	"github.com/rs/zerolog"

	"agent_backend/router"
)

const (
	modelPath    = "router_model.gob"
	epochs       = 500
	learningRate = 0.5
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	logger.Info().Int("examples", len(router.TrainingData)).Msg("training model")
	model := router.Train(router.TrainingData, epochs, learningRate)

	for _, ex := range router.TrainingData {
		label, confidence := model.Predict(ex.Text)
		logger.Debug().
			Str("text", ex.Text).
			Str("predicted", label).
			Float64("confidence", confidence).
			Msg("training example")
		if label != ex.Label {
			logger.Warn().Str("text", ex.Text).Str("want", ex.Label).Str("got", label).Msg("misclassified training example")
		}
	}

	if err := model.Save(modelPath); err != nil {
		logger.Fatal().Err(err).Msg("fail to save model")
	}
	logger.Info().Str("path", modelPath).Msg("model saved")
}
