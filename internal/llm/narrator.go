package llm

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/packages/ssestream"

	"ascension/internal/game"
)

// narratorSystemPrompt instructs the model to narrate and to report every
// world change through bracketed state commands. The director parses these
// out of the stream; prose alone never mutates state.
const narratorSystemPrompt = `You are the narrator and world simulator for a cultivation (xianxia) role-playing game. You have complete knowledge of the world state provided each turn.

Your job: respond to player actions with vivid second-person narration, 2-5 paragraphs, grounded in the provided state.

After the narration, report every change the scene caused using state commands, one per line, in the order they happened:

[NPC: name="...", realm="...", gender="...", description="...", tags="..."]
[NPC_STANCE: name="...", stance="...", thoughts="..."]
[NPC_MEMORY: name="...", key="...", value="..."]
[NPC_EMOTION: name="...", emotion="...", intensity=0-100]
[AFFINITY: name="...", value=+=N] (also WIFE_AFFINITY, SLAVE_AFFINITY, PRISONER_AFFINITY)
[FACTION: name="...", description="...", alignment="..."]
[LOCATION: name="...", description="..."] [LORE: ...] [ENTITY: ...]
[ITEM_GAINED: name="...", quantity=N, category="...", rarity="..."]
[ITEM_CONSUMED: name="...", quantity=N]
[ITEM_EQUIPPED: name="..."] [ITEM_UNEQUIPPED: name="..."]
[SKILL_LEARNED: name="...", description="...", realm="..."]
[STAT_CHANGED: stat="health|qi|attack|defense|speed|experience|spirit_stones", value="+N|-N|N%|low|medium|high"]
[STAT_MAX_CHANGED: stat="health|qi", value=N]
[BREAKTHROUGH: outcome="begun|success|failure"] (begun marks the start of a tribulation at a bottleneck; success or failure resolves it)
[BEGIN_COMBAT: opponents="A, B", location="..."]
[TIME_PASSED: hours=N] (also days, months, years)
[STATUS_APPLIED: name="...", turns=N, target="..."] [STATUS_CURED: name="..."]
[REPUTATION_CHANGED: value=+=N]

Rules:
- Stay consistent with the provided state. Never contradict recorded facts.
- Every consequence the prose describes must also appear as a command.
- Never invent numeric stats for characters; declare their realm and let the game derive numbers.
- Affinity and reputation move in small steps.
- If the player attempts the impossible, narrate the failure instead of refusing.`

// Narrator drives the per-turn narration call.
type Narrator struct {
	service *Service
}

func NewNarrator(service *Service) *Narrator {
	return &Narrator{service: service}
}

// NarrateTurn streams the narrator's response to one player action. The
// caller extracts state commands from the accumulated text once the stream
// finishes.
func (n *Narrator) NarrateTurn(ctx context.Context, st game.State, history []string, playerInput string) *ssestream.Stream[openai.ChatCompletionChunk] {
	ctx = WithOperationType(ctx, "narrator.turn")
	ctx = WithGameContext(ctx, map[string]interface{}{
		"player_realm": st.Player.Realm,
		"npc_count":    len(st.NPCs),
	})

	userPrompt := game.BuildStateContext(st, history) + "\nPLAYER ACTION: " + playerInput

	return n.service.CompleteStream(ctx, CompletionRequest{
		SystemPrompt: narratorSystemPrompt,
		UserPrompt:   userPrompt,
		MaxTokens:    1200,
	})
}
