package controller

import (
	"context"
	"errors"
	"strings"

	"github.com/vedannt004/careerprep-chatbot/internal/speech"
)

// ToggleListening starts or stops the microphone. The recognizer is built
// on first use; when the provider cannot recognise speech the user is
// alerted and nothing is constructed.
func (c *Controller) ToggleListening() error {
	rec, err := c.ensureRecognizer()
	if err != nil {
		return err
	}
	if rec.Listening() {
		rec.Stop()
		return nil
	}
	return rec.Start()
}

// ensureRecognizer builds the recognizer once. View calls are made without
// c.mu held: the view may block on a UI loop that reads controller state.
func (c *Controller) ensureRecognizer() (speech.Recognizer, error) {
	c.voiceMu.Lock()
	defer c.voiceMu.Unlock()

	c.mu.Lock()
	rec, lang := c.recognizer, c.language
	c.mu.Unlock()
	if rec != nil {
		return rec, nil
	}

	if !c.provider.SupportsRecognition() {
		c.view.Alert(UnsupportedMicAlert)
		return nil, speech.ErrUnsupported
	}

	rec, err := c.provider.NewRecognizer(speech.RecognizerConfig{
		Language: lang,
		Interim:  true,
	}, speech.Handlers{
		OnStart:  c.onListenStart,
		OnEnd:    c.onListenEnd,
		OnError:  c.onListenError,
		OnResult: c.onResult,
	})
	if err != nil {
		c.view.Alert(UnsupportedMicAlert)
		return nil, err
	}

	c.mu.Lock()
	c.recognizer = rec
	c.mu.Unlock()
	return rec, nil
}

func (c *Controller) onListenStart() {
	c.mu.Lock()
	c.listening = true
	c.mu.Unlock()
	c.view.SetVoiceStatus(ListeningStatus)
	c.view.SetListening(true)
}

func (c *Controller) onListenEnd() {
	c.mu.Lock()
	c.listening = false
	c.mu.Unlock()
	c.view.SetVoiceStatus("")
	c.view.SetListening(false)
}

func (c *Controller) onListenError(err error) {
	c.view.SetVoiceStatus("Mic error: " + err.Error())
}

// onResult streams the newest transcript into the input. A final result
// is sent when auto-send is on.
func (c *Controller) onResult(ev speech.ResultEvent) {
	var final, interim strings.Builder
	for i := ev.ResultIndex; i < len(ev.Results); i++ {
		if ev.Results[i].Final {
			final.WriteString(ev.Results[i].Transcript)
		} else {
			interim.WriteString(ev.Results[i].Transcript)
		}
	}

	combined := final.String()
	if combined == "" {
		combined = interim.String()
	}
	combined = strings.TrimSpace(combined)

	c.mu.Lock()
	c.interimTranscript = interim.String()
	autoSend := c.autoSend
	c.mu.Unlock()

	if combined != "" {
		c.view.SetInput(combined)
	}
	if final.Len() > 0 && autoSend && combined != "" {
		c.bg.Add(1)
		go func() {
			defer c.bg.Done()
			_ = c.Send(context.Background(), combined)
		}()
	}
}

// Speak reads text aloud when voice output is enabled, replacing anything
// still being spoken.
func (c *Controller) Speak(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	synth := c.ensureSynthesizer()
	if synth == nil {
		return
	}

	c.bg.Add(1)
	go func() {
		defer c.bg.Done()
		err := synth.Speak(context.Background(), text)
		if err != nil && !errors.Is(err, context.Canceled) {
			c.logger.Warn().Err(err).Msg("speech output failed")
			c.view.SetVoiceStatus("Speech error: " + err.Error())
		}
	}()
}

func (c *Controller) ensureSynthesizer() speech.Synthesizer {
	c.voiceMu.Lock()
	defer c.voiceMu.Unlock()

	c.mu.Lock()
	enabled, synth, unavailable := c.ttsEnabled, c.synthesizer, c.synthUnavailable
	c.mu.Unlock()
	if !enabled {
		return nil
	}
	if synth != nil || unavailable {
		return synth
	}

	if !c.provider.SupportsSynthesis() {
		c.markSynthUnavailable()
		return nil
	}
	synth, err := c.provider.NewSynthesizer()
	if err != nil {
		c.logger.Warn().Err(err).Msg("speech output unavailable")
		c.markSynthUnavailable()
		return nil
	}

	c.mu.Lock()
	c.synthesizer = synth
	c.mu.Unlock()
	return synth
}

func (c *Controller) markSynthUnavailable() {
	c.mu.Lock()
	c.synthUnavailable = true
	c.mu.Unlock()
	c.view.SetVoiceStatus("Speech output is not available.")
}
