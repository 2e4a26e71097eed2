package contracts

// Report pipeline stage 정의 (SSOT)
// 로그의 "stage" 필드는 이 상수만 사용
//
// 흐름:
//   validate → resolve → quote → aggregate → render

// Stage represents a report pipeline stage
type Stage string

const (
	// StageValidate: 입력 코드 검증 (숫자만 허용)
	// 위치: internal/resolver/code.go
	StageValidate Stage = "validate"

	// StageResolve: suffix 후보(.TW → .TWO) 순서대로 일봉 조회
	// 위치: internal/resolver/resolver.go
	StageResolve Stage = "resolve"

	// StageQuote: 현재가 조회, 실패해도 계속 진행
	StageQuote Stage = "quote"

	// StageAggregate: 월별 시가/종가 차이 → Year × Month pivot
	// 위치: internal/monthly/
	StageAggregate Stage = "aggregate"

	// StageRender: 셀 색상 + HTML/터미널 출력
	// 위치: internal/render/
	StageRender Stage = "render"
)
