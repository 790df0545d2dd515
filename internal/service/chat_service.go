package service

import (
	"context"
	"strings"
	"time"

	"product-support-be/internal/apperr"
	"product-support-be/internal/constant"
	"product-support-be/internal/dto"
	"product-support-be/internal/entity"
	"product-support-be/internal/pkg/logger"
	"product-support-be/internal/repository/memory"
	"product-support-be/internal/repository/specification"
	"product-support-be/internal/repository/unitofwork"
	"product-support-be/pkg/answer"
	"product-support-be/pkg/llm"
	"product-support-be/pkg/retrieval"
	"product-support-be/pkg/safety"
	"product-support-be/pkg/store"

	"github.com/google/uuid"
)

// maxHistoryTurns caps the conversational context handed to the model.
const maxHistoryTurns = 10

type IChatService interface {
	StartSession(ctx context.Context, req *dto.StartSessionRequest) (*dto.StartSessionResponse, error)
	SendMessage(ctx context.Context, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	GetHistory(ctx context.Context, sessionId uuid.UUID) (*dto.SessionHistoryResponse, error)
}

type chatService struct {
	uowFactory        unitofwork.RepositoryFactory
	packageService    IPackageService
	escalationService IEscalationService
	sessionMemory     *memory.SessionRepository
	scorer            *retrieval.Scorer
	gate              *safety.Gate
	generator         *answer.Generator
	log               logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	packageService IPackageService,
	escalationService IEscalationService,
	sessionMemory *memory.SessionRepository,
	scorer *retrieval.Scorer,
	gate *safety.Gate,
	generator *answer.Generator,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:        uowFactory,
		packageService:    packageService,
		escalationService: escalationService,
		sessionMemory:     sessionMemory,
		scorer:            scorer,
		gate:              gate,
		generator:         generator,
		log:               log,
	}
}

// StartSession resolves the product by SKU and pins the session to the
// package that is active right now. Later publishes and rollbacks never
// change what an open session reads.
func (s *chatService) StartSession(ctx context.Context, req *dto.StartSessionRequest) (*dto.StartSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	product, err := uow.ProductRepository().FindOne(ctx, specification.BySKU{SKU: req.SKU})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperr.NotFound("product with SKU", req.SKU)
	}

	pkg, err := s.packageService.ActivePackage(ctx, product.Id)
	if err != nil {
		return nil, err
	}

	session := &entity.ChatSession{
		Id:             uuid.New(),
		ProductId:      product.Id,
		PackageId:      pkg.Id,
		PackageVersion: pkg.Version,
		CustomerRef:    req.CustomerRef,
		CreatedAt:      time.Now(),
	}
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	s.sessionMemory.Save(&store.Session{
		ID:             session.Id.String(),
		ProductID:      product.Id.String(),
		PackageID:      pkg.Id.String(),
		PackageVersion: pkg.Version,
	})

	s.log.Info("chat", "session started", map[string]interface{}{
		"session_id":      session.Id.String(),
		"sku":             req.SKU,
		"package_version": pkg.Version,
	})

	return &dto.StartSessionResponse{
		SessionId:      session.Id,
		ProductName:    product.Name,
		PackageVersion: pkg.Version,
	}, nil
}

// SendMessage runs the full answer pipeline: retrieve over the pinned
// package, gate the question before generation, generate, gate the result,
// then act on the verdict. A blocked question never reaches the model.
func (s *chatService) SendMessage(ctx context.Context, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, apperr.MalformedInput("message is empty")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, cached, err := s.resolveSession(ctx, uow, req.SessionId)
	if err != nil {
		return nil, err
	}

	userMsg := &entity.ChatMessage{
		Id:        uuid.New(),
		SessionId: req.SessionId,
		Role:      constant.RoleUser,
		Content:   req.Message,
		CreatedAt: time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, userMsg); err != nil {
		return nil, err
	}

	ranked, err := s.retrieve(ctx, uow, session.PackageId, req.Message)
	if err != nil {
		return nil, err
	}
	gateView := toGateView(ranked)

	// Pre-generation scan. Confidence 1 keeps answer-side floors out of the
	// way so only the question and the retrieval set decide the early block.
	prescan := s.gate.Evaluate(req.Message, gateView, safety.Answer{Confidence: 1})
	if prescan.Action == safety.ActionBlock {
		return s.finishBlocked(ctx, uow, cached, req, prescan)
	}

	result, err := s.generator.Generate(ctx, req.Message, toSources(ranked), toLLMHistory(cached))
	if err != nil {
		return nil, err
	}

	verdict := s.gate.Evaluate(req.Message, gateView, safety.Answer{Confidence: result.Confidence})

	answerText := result.Answer
	escalated := false
	switch verdict.Action {
	case safety.ActionBlock:
		answerText = constant.RefusalMessage
	case safety.ActionEscalate:
		answerText = answerText + "\n\n" + constant.EscalationNotice
		escalated = true
	}

	assistantMsg := &entity.ChatMessage{
		Id:         uuid.New(),
		SessionId:  req.SessionId,
		Role:       constant.RoleAssistant,
		Content:    answerText,
		Action:     string(verdict.Action),
		Confidence: result.Confidence,
		CreatedAt:  time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, assistantMsg); err != nil {
		return nil, err
	}

	var citations []dto.CitationResponse
	if verdict.Action != safety.ActionBlock {
		citations, err = s.storeCitations(ctx, uow, assistantMsg.Id, ranked)
		if err != nil {
			return nil, err
		}
	}

	if escalated {
		if _, err := s.escalationService.Record(ctx, req.SessionId, assistantMsg.Id,
			worstSeverity(verdict.Triggers), triggerTypes(verdict.Triggers), triggerReasons(verdict.Triggers)); err != nil {
			s.log.Error("chat", "failed to record escalation", map[string]interface{}{
				"session_id": req.SessionId.String(),
				"error":      err.Error(),
			})
		}
	}

	s.rememberTurns(cached, req.Message, answerText)

	s.log.Info("chat", "message answered", map[string]interface{}{
		"session_id": req.SessionId.String(),
		"action":     string(verdict.Action),
		"citations":  len(citations),
		"confidence": result.Confidence,
	})

	return &dto.SendMessageResponse{
		MessageId:  assistantMsg.Id,
		Answer:     answerText,
		Action:     string(verdict.Action),
		Confidence: result.Confidence,
		Citations:  citations,
		Escalated:  escalated,
	}, nil
}

func (s *chatService) GetHistory(ctx context.Context, sessionId uuid.UUID) (*dto.SessionHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperr.NotFound("chat session", sessionId.String())
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.SessionHistoryResponse{
		SessionId:      sessionId,
		PackageVersion: session.PackageVersion,
		Messages:       make([]dto.MessageHistoryItem, len(messages)),
	}
	for i, m := range messages {
		res.Messages[i] = dto.MessageHistoryItem{
			Id:        m.Id,
			Role:      m.Role,
			Content:   m.Content,
			Action:    m.Action,
			CreatedAt: m.CreatedAt,
		}
	}
	return res, nil
}

// resolveSession returns the persisted session plus its memory-cache entry,
// rebuilding the cache entry after an eviction or restart.
func (s *chatService) resolveSession(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) (*entity.ChatSession, *store.Session, error) {
	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, nil, err
	}
	if session == nil {
		return nil, nil, apperr.NotFound("chat session", sessionId.String())
	}

	cached, found := s.sessionMemory.Get(sessionId.String())
	if !found {
		cached = &store.Session{
			ID:             session.Id.String(),
			ProductID:      session.ProductId.String(),
			PackageID:      session.PackageId.String(),
			PackageVersion: session.PackageVersion,
		}
		s.sessionMemory.Save(cached)
	}
	return session, cached, nil
}

// retrieve loads every chunk of the pinned package and ranks it against the
// query. Packages are small enough that scoring in process beats a second
// storage round-trip per query.
func (s *chatService) retrieve(ctx context.Context, uow unitofwork.UnitOfWork, packageId uuid.UUID, query string) (retrieval.Ranked, error) {
	docs, err := uow.DocumentRepository().FindAll(ctx, specification.ByPackageID{PackageID: packageId})
	if err != nil {
		return retrieval.Ranked{}, err
	}
	if len(docs) == 0 {
		return retrieval.Ranked{}, nil
	}

	docIds := make([]uuid.UUID, len(docs))
	docsById := make(map[uuid.UUID]*entity.Document, len(docs))
	for i, doc := range docs {
		docIds[i] = doc.Id
		docsById[doc.Id] = doc
	}

	chunks, err := uow.ChunkRepository().FindAll(ctx, specification.ByDocumentIDs{DocumentIDs: docIds})
	if err != nil {
		return retrieval.Ranked{}, err
	}

	candidates := make([]retrieval.Candidate, len(chunks))
	for i, c := range chunks {
		doc := docsById[c.DocumentId]
		candidates[i] = retrieval.Candidate{
			ChunkID:       c.Id,
			Content:       c.Content,
			DocumentID:    c.DocumentId,
			DocumentTitle: doc.Title,
			DocumentType:  doc.DocType,
			PageStart:     c.PageStart,
			PageEnd:       c.PageEnd,
			SectionPath:   c.SectionPath,
			ContentType:   c.ContentType,
			Order:         c.OrderInDocument,
		}
	}

	return s.scorer.Score(query, candidates), nil
}

// finishBlocked persists the refusal without ever calling the model.
func (s *chatService) finishBlocked(ctx context.Context, uow unitofwork.UnitOfWork, cached *store.Session, req *dto.SendMessageRequest, verdict safety.Verdict) (*dto.SendMessageResponse, error) {
	assistantMsg := &entity.ChatMessage{
		Id:        uuid.New(),
		SessionId: req.SessionId,
		Role:      constant.RoleAssistant,
		Content:   constant.RefusalMessage,
		Action:    string(safety.ActionBlock),
		CreatedAt: time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, assistantMsg); err != nil {
		return nil, err
	}

	s.rememberTurns(cached, req.Message, constant.RefusalMessage)

	s.log.Warn("chat", "question blocked before generation", map[string]interface{}{
		"session_id": req.SessionId.String(),
		"triggers":   triggerTypes(verdict.Triggers),
	})

	return &dto.SendMessageResponse{
		MessageId: assistantMsg.Id,
		Answer:    constant.RefusalMessage,
		Action:    string(safety.ActionBlock),
		Citations: []dto.CitationResponse{},
	}, nil
}

// storeCitations persists the non-zero retrieval hits as citations for the
// assistant message. Zero-score padding never becomes a citation.
func (s *chatService) storeCitations(ctx context.Context, uow unitofwork.UnitOfWork, messageId uuid.UUID, ranked retrieval.Ranked) ([]dto.CitationResponse, error) {
	var rows []*entity.ChatCitation
	var res []dto.CitationResponse

	for _, r := range ranked.Results {
		if r.Score <= 0 {
			continue
		}
		rows = append(rows, &entity.ChatCitation{
			Id:            uuid.New(),
			MessageId:     messageId,
			ChunkId:       r.ChunkID,
			DocumentId:    r.DocumentID,
			DocumentTitle: r.DocumentTitle,
			PageStart:     r.PageStart,
			PageEnd:       r.PageEnd,
			SectionPath:   r.SectionPath,
			Score:         r.Score,
			CreatedAt:     time.Now(),
		})
		res = append(res, dto.CitationResponse{
			ChunkId:       r.ChunkID,
			DocumentTitle: r.DocumentTitle,
			PageStart:     r.PageStart,
			PageEnd:       r.PageEnd,
			SectionPath:   r.SectionPath,
		})
	}

	if len(rows) > 0 {
		if err := uow.ChatCitationRepository().CreateBulk(ctx, rows); err != nil {
			return nil, err
		}
	}
	if res == nil {
		res = []dto.CitationResponse{}
	}
	return res, nil
}

func (s *chatService) rememberTurns(cached *store.Session, question, reply string) {
	cached.History = append(cached.History,
		store.Turn{Role: constant.RoleUser, Content: question},
		store.Turn{Role: constant.RoleAssistant, Content: reply},
	)
	if len(cached.History) > maxHistoryTurns {
		cached.History = cached.History[len(cached.History)-maxHistoryTurns:]
	}
	cached.LastQuery = question
	s.sessionMemory.Save(cached)
}

func toGateView(ranked retrieval.Ranked) []safety.RetrievedChunk {
	var view []safety.RetrievedChunk
	for _, r := range ranked.Results {
		if r.Score <= 0 {
			continue
		}
		view = append(view, safety.RetrievedChunk{
			DocumentID:  r.DocumentID.String(),
			SectionPath: r.SectionPath,
			ContentType: r.ContentType,
			Score:       r.Score,
		})
	}
	return view
}

func toSources(ranked retrieval.Ranked) []answer.Source {
	var sources []answer.Source
	for _, r := range ranked.Results {
		if r.Score <= 0 {
			continue
		}
		sources = append(sources, answer.Source{
			Index:         len(sources) + 1,
			DocumentTitle: r.DocumentTitle,
			SectionPath:   r.SectionPath,
			PageStart:     r.PageStart,
			PageEnd:       r.PageEnd,
			Content:       r.Content,
		})
	}
	return sources
}

func toLLMHistory(cached *store.Session) []llm.Message {
	history := make([]llm.Message, len(cached.History))
	for i, t := range cached.History {
		history[i] = llm.Message{Role: t.Role, Content: t.Content}
	}
	return history
}

func worstSeverity(triggers []safety.Trigger) string {
	worst := safety.SeverityLow
	for _, t := range triggers {
		if t.Severity > worst {
			worst = t.Severity
		}
	}
	return worst.String()
}

func triggerTypes(triggers []safety.Trigger) []string {
	types := make([]string, len(triggers))
	for i, t := range triggers {
		types[i] = t.Type
	}
	return types
}

func triggerReasons(triggers []safety.Trigger) string {
	reasons := make([]string, len(triggers))
	for i, t := range triggers {
		reasons[i] = t.Reason
	}
	return strings.Join(reasons, "; ")
}
