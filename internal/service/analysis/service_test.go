package analysis

import (
	"context"
	"errors"
	"testing"

	model "github.com/DomRamond/feeling-whatsapp-app/internal/model/analysis"
	sentimentservice "github.com/DomRamond/feeling-whatsapp-app/internal/service/sentiment"
)

func newTestService() *Service {
	labeler := sentimentservice.NewLabeler(sentimentservice.LexiconClassifier{}, 2)
	return NewService(labeler, model.NewMemoryStore(), DefaultOptions())
}

const sampleTranscript = "12/05/2023, 09:15 - Alice: Bom dia pessoal!\n" +
	"12/05/2023, 09:16 - Bob: Tudo certo por aqui?\n" +
	"Sim, obrigado\n" +
	"13/05/2023, 10:01 - Alice: que absurdo essa notícia, fiquei com raiva\n"

func TestRunFullPipeline(t *testing.T) {
	svc := newTestService()

	result, err := svc.Run(context.Background(), "", "conversa.txt", []byte(sampleTranscript))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ID == "" {
		t.Fatal("missing analysis id")
	}
	if len(result.Messages) != 3 {
		t.Fatalf("expected 3 labeled messages, got %d", len(result.Messages))
	}
	if result.Messages[1].Text != "Tudo certo por aqui? Sim, obrigado" {
		t.Fatalf("continuation lost: %q", result.Messages[1].Text)
	}

	total := 0
	for _, n := range result.Report.Distribution {
		total += n
	}
	if total != len(result.Messages) {
		t.Fatalf("distribution sums to %d, want %d", total, len(result.Messages))
	}
	if len(result.Report.Daily) != 2 {
		t.Fatalf("expected 2 days in trend, got %d", len(result.Report.Daily))
	}

	stored, err := svc.Find(result.ID)
	if err != nil {
		t.Fatalf("stored analysis not found: %v", err)
	}
	if stored.FileName != "conversa.txt" {
		t.Fatalf("unexpected file name: %q", stored.FileName)
	}
}

func TestRunNoMessages(t *testing.T) {
	svc := newTestService()
	_, err := svc.Run(context.Background(), "", "vazio.txt", []byte("isto não é um export\nsó texto solto"))
	if !errors.Is(err, ErrNoMessages) {
		t.Fatalf("expected ErrNoMessages, got %v", err)
	}
}

func TestRunAllFiltered(t *testing.T) {
	svc := newTestService()
	raw := "12/05/2023, 09:15 - WhatsApp: As mensagens são protegidas com a criptografia de ponta a ponta.\n" +
		"12/05/2023, 09:16 - Bob: ok\n"
	_, err := svc.Run(context.Background(), "", "sistema.txt", []byte(raw))
	if !errors.Is(err, ErrAllFiltered) {
		t.Fatalf("expected ErrAllFiltered, got %v", err)
	}
}

func TestRunLatin1Transcript(t *testing.T) {
	svc := newTestService()
	raw := []byte("12/05/2023, 09:15 - Alice: n\xe3o vou hoje, at\xe9 amanh\xe3\n")
	result, err := svc.Run(context.Background(), "", "latin1.txt", raw)
	if err != nil {
		t.Fatalf("latin-1 transcript must decode: %v", err)
	}
	if result.Messages[0].Text != "não vou hoje, até amanhã" {
		t.Fatalf("accents lost: %q", result.Messages[0].Text)
	}
}

func TestRunTracksProgress(t *testing.T) {
	svc := newTestService()
	result, err := svc.Run(context.Background(), "my-token", "conversa.txt", []byte(sampleTranscript))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ID != "my-token" {
		t.Fatalf("client token not honoured: %q", result.ID)
	}
	p, ok := svc.Progress("my-token")
	if !ok {
		t.Fatal("progress entry missing")
	}
	if p.Stage != model.StageDone || p.Done != 3 {
		t.Fatalf("unexpected final progress: %+v", p)
	}
}

func TestFindUnknownID(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Find("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
