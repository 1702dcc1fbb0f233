package eventbus

// DocumentEventType 생성 문서 이벤트 종류
type DocumentEventType string

const (
	DocumentEventGenerated DocumentEventType = "Generated" // 결합 문서 생성됨
	DocumentEventExtracted DocumentEventType = "Extracted" // 조합원별 문서 추출됨
)

// DocumentEvent 생성 문서 수명주기 이벤트
type DocumentEvent struct {
	Type         DocumentEventType
	DocumentID   uint
	FundID       uint
	DocType      string
	MemberID     uint // 추출 이벤트에만 채워짐
	MemberName   string
	ArtifactPath string
	PageCount    int
}

type DocumentEventHandler = Handler[DocumentEvent]
type DocumentEventBus = Bus[DocumentEventType, DocumentEvent]

func NewDocumentEventBus() *DocumentEventBus {
	return NewBus[DocumentEventType, DocumentEvent]()
}
