package coach

import "github.com/secmon-lab/mnemosyne/pkg/domain/model"

func BuildSystemPrompt(svc Service, doc *model.MemoryDocument) (string, error) {
	return svc.(*client).buildSystemPrompt(doc)
}
