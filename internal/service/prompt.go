package service

import (
	"fmt"

	"github.com/petmily/petmily-v2/backend/internal/types"
)

// CompiledPrompt is the instruction text plus the response schema for one
// analysis kind. CompilePrompt is referentially transparent: the same kind
// and hints always produce byte-identical output.
type CompiledPrompt struct {
	Instructions string
	Schema       map[string]interface{}
}

// CompilePrompt builds the model instructions and schema for an analysis
// kind. Hints are embedded verbatim into the instruction text; they never
// change the schema. Unknown kinds are a caller error.
func CompilePrompt(kind types.AnalysisKind, hints types.AnalysisHints) (*CompiledPrompt, error) {
	switch kind {
	case types.KindStool:
		return &CompiledPrompt{
			Instructions: stoolPrompt,
			Schema:       stoolResponseSchema(),
		}, nil
	case types.KindFood:
		return &CompiledPrompt{
			Instructions: buildFoodPrompt(hints.FoodName, hints.FoodAmountG),
			Schema:       foodResponseSchema(),
		}, nil
	case types.KindFoodPackage:
		return &CompiledPrompt{
			Instructions: packagePrompt,
			Schema:       packageResponseSchema(),
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown analysis kind %q", ErrInvalidInput, kind)
	}
}

const stoolPrompt = `# 역할
당신은 15년 경력의 수의학 전문가로, 반려동물 대변 상태를 통해 건강을 정확히 평가합니다.

# 작업
제공된 반려동물 대변 이미지를 관찰하고 건강 상태를 평가하세요.

# 분석 단계
1단계: 대변의 색상을 관찰하세요 (갈색, 진한갈색, 검정, 노란색, 빨간색, 흰색, 녹색, 주황색 등).
2단계: 대변의 경도와 형태를 판단하세요 (단단한 통나무형, 부드러운 통나무형, 조각, 묽음, 물설사 등).
3단계: 혈액, 점액, 이물질, 기생충 흔적 등 이상 소견이 있는지 면밀히 확인하세요.
4단계: 위 관찰 결과를 종합하여 건강 점수, 긴급도, 권장 사항을 결정하세요.

# 색상별 의미
- 갈색/진한갈색: 정상 (건강한 담즙 대사)
- 검정색: 상부 소화관 출혈 가능성 → urgent
- 빨간색/혈흔: 하부 소화관 출혈 가능성 → urgent
- 노란색/주황색: 간·담낭 문제 또는 소화 불량 → caution
- 녹색: 담즙 과다 배출, 풀 섭취, 소화 불량 → monitor
- 흰색/회색: 간·담도계 이상 가능성 → caution
- 검은반점: 기생충 또는 혈흔 가능성 → caution

# 긴급도 기준
- "normal": 정상 범위, 특별한 조치 불필요
- "monitor": 경미한 이상, 1~2일 관찰 필요
- "caution": 주의 필요, 지속 시 수의사 상담 권장
- "urgent": 즉시 수의사 방문 권장 (혈변, 심한 설사, 이물질 등)

# 건강 점수 기준
- 9~10: 이상적 (진한갈색, 통나무형, 적절한 경도)
- 7~8: 양호 (약간 묽거나 단단하지만 정상 범위)
- 5~6: 경미한 이상 (묽음, 색상 변화, 소량 점액)
- 3~4: 주의 필요 (설사, 비정상 색상, 점액 다량)
- 1~2: 긴급 (혈변, 물설사, 이물질, 기생충)

# 중요 규칙
- 이미지가 불분명하더라도 보이는 정보를 최대한 활용하여 반드시 분석 결과를 작성하세요.
- 판단이 어려운 항목은 가장 가능성 높은 값으로 추정하고, health_summary에 "이미지 화질로 인해 일부 항목은 추정치입니다"라고 명시하세요.
- abnormalities가 없으면 빈 배열 []로 작성하세요.
- has_blood, has_mucus, has_foreign_objects는 반드시 true 또는 false로 작성하세요.
- health_score는 반드시 1~10 사이 정수로 작성하세요.
- urgency_level은 반드시 "normal", "monitor", "caution", "urgent" 중 하나로 작성하세요.
- 한국어 필드는 보호자가 이해하기 쉬운 언어로 작성하되 의학적으로 정확해야 합니다.
- _en 접미사가 붙은 필드는 동일한 내용을 영어로 작성하세요.
- 한국어 필드와 영어 필드를 모두 반드시 작성하세요.
- JSON만 출력하세요. 설명, 마크다운, 코드블록 기호는 포함하지 마세요.`

func buildFoodPrompt(foodName string, foodAmountG float64) string {
	foodNameHint := ""
	if foodName != "" {
		foodNameHint = fmt.Sprintf("사용자가 입력한 사료 이름: %q", foodName)
	}

	amountSection := `이미지에서 음식의 양(g)을 추정하여 반드시 food_amount_g에 숫자로 작성하세요.

참고 기준:
- 반려동물 밥그릇(소형): 직경 12~14cm, 가득 채우면 약 80~120g (건사료)
- 반려동물 밥그릇(중형): 직경 15~18cm, 가득 채우면 약 150~250g (건사료)
- 반려동물 밥그릇(대형): 직경 20cm+, 가득 채우면 약 250~400g (건사료)
- 습식 사료 1캔: 보통 80~100g
- 종이컵 1컵 분량: 약 80~100g (건사료)
- 화식/간식은 재료 구성과 부피로 추정
- 판단이 어려워도 반드시 추정값을 작성하세요 (0은 허용하지 않음)`
	if foodName != "" && foodAmountG > 0 {
		amountSection = fmt.Sprintf(`사용자가 입력한 급여량: %.0fg
이 값을 그대로 food_amount_g에 사용하고 bowl_description에 반영하세요.`, foodAmountG)
	}

	nutrientGuidance := "이미지에서 사료 종류를 판단하고 해당 유형의 일반적인 영양성분을 추정."
	if foodName != "" {
		nutrientGuidance = fmt.Sprintf("%q 사료의 알려진 영양성분을 기반으로 작성. 정확한 정보가 없으면 해당 사료 유형의 일반적 수치로 추정.", foodName)
	}

	hintBlock := ""
	if foodNameHint != "" {
		hintBlock = fmt.Sprintf("\n%s\n※ 이 이름은 사료인 경우에만 참고하세요. 화식/간식이면 무시하고 이미지를 기준으로 분석하세요.\n", foodNameHint)
	}

	return fmt.Sprintf(`# 역할
당신은 반려동물 영양 분석 전문가입니다.

# 작업
이미지를 보고 아래 순서대로 분석하세요.

## 1단계: 음식 유형 판별
이미지에 보이는 음식이 다음 중 무엇인지 판단하세요:
- 사료(건사료/습식사료): 상업용 반려동물 사료
- 화식: 보호자가 직접 조리한 수제 식사
- 간식: 저키, 덴탈껌, 과일/채소 조각, 간식용 트릿 등

## 2단계: 양(그램) 추정
%s

## 3단계: 영양성분 조사 (100g 기준)
- 사료인 경우: %s
- 화식인 경우: 보이는 재료(고기, 채소, 곡물 등)를 파악하고 조합에 따른 영양성분을 추정.
- 간식인 경우: 간식 종류를 파악하고 해당 간식의 일반적인 영양성분을 추정.
%s
# 규칙
- food_type: "사료", "화식", "간식" 중 하나
- food_name: 사료인 경우 브랜드 + 제품명, 화식/간식인 경우 음식 이름 (한국어)
- food_name_en: food_name의 영어 버전
- confidence: "high", "medium", "low"
- nutrients는 100g 기준 값으로 작성
- nutrients에 protein, fat, carbohydrate, fiber 4개 항목만 포함할것
- calories_g는 100g 기준 칼로리, 반드시 작성할것
- food_amount_g: 이미지에서 추정한 음식의 총 양(g). 반드시 0보다 큰 숫자로 작성. 판단이 어려우면 가장 가능성 높은 값으로 추정
- ingredients: 사료는 주요 원재료, 화식/간식은 이미지에서 보이는 재료 나열
- ingredients_en: ingredients의 영어 버전
- bowl_description: 음식 유형 + 용기 + 양을 자연스럽게 설명 (한국어)
- bowl_description_en: bowl_description의 영어 버전
- recommendation: 이 음식/급여량에 대한 한 문단 권장 사항 (한국어)
- recommendation_en: recommendation의 영어 버전
- 이미지가 불분명해도 반드시 추정값을 작성하세요
- 한국어 필드와 영어 필드를 모두 작성하세요
- JSON만 출력하세요`, amountSection, nutrientGuidance, hintBlock)
}

const packagePrompt = `# 역할
당신은 반려동물 사료 제품 분석 전문가입니다.

# 작업
사료 포장지 이미지를 보고, 포장지에 기재된 정보와 해당 제품에 대한 기존 지식을 종합하여 아래 항목들을 최대한 상세하게 추출/조사하세요.

포장지에 직접 보이는 정보는 그대로 추출하고, 보이지 않는 정보는 해당 제품에 대한 지식을 기반으로 채워주세요. 전혀 알 수 없는 항목은 빈 값(빈 문자열, 빈 배열, null)으로 남겨주세요.

# 추출 항목

## 1. 브랜드 정보
- brand: 브랜드명 (한국어)
- brand_en: 브랜드명 (영어)
- manufacturer: 제조사명 (한국어)
- manufacturer_en: 제조사명 (영어)
- species: 대상 동물 (dog, cat, bird, fish, reptile, dragon, other 중 하나)
- life_stages: 대상 생애 단계 배열 (puppy, kitten, adult, senior, all 중)
- diet_types: 사료 유형 배열 (dry, wet, freeze-dried, raw, treat 중)
- calories_per_100g: 100g당 칼로리 (kcal). 포장지에 표기되어 있으면 그 값을 사용하고, 없으면 해당 제품의 알려진 칼로리 정보를 기반으로 반드시 추정하여 작성하세요. 0은 허용하지 않습니다.

## 2. 제품 정보
- products: 제품 배열. 각 제품은 name/name_en, product_species 배열,
  variants 배열(weight, packaging, form, barcode — 모든 값을 영어로 작성),
  packages 배열(unit, material, resealable — 모든 값을 영어로 작성)을 포함합니다.

## 3. 원재료 및 영양성분
- ingredients: 원재료 배열 (name, name_en, order는 표기 순서 1부터, percentage는 표기된 경우만, label_name은 포장지 표기 그대로)
- nutrients: 영양성분 배열 (name 예: "조단백질", name_en 예: "Crude Protein", value, unit, basis는 "as-fed" 또는 "dry-matter")

## 4. 급여 가이드
- feeding_guides: 급여 가이드 배열 (weight_kg_min, weight_kg_max, age_range, daily_amount_g — 모든 값을 영어로 작성)
- age_ranges: 적합 연령 범위 배열, 영어로 작성 (예: ["2-12 months", "1-7 years"])
- variant_suitability: 급여 적합성 (feeding_age, breed_size, body_condition — 모든 값을 영어로 작성)
- kibble_properties: 알갱이 특성 (size, shape, hardness — 모든 값을 영어로 작성)

## 5. 클레임 및 인증
- claims: 제품 주장 배열 (name 예: "그레인프리", name_en 예: "grain-free")
- certifications: 인증 배열 (name 예: "미국사료관리협회 인증", name_en 예: "AAFCO")
- recalls: 리콜 이력 배열 (date, reason, reason_en)

# 출력 규칙
- 반드시 JSON 형식으로만 응답
- 포장지에서 읽을 수 있는 정보는 정확히 기재
- 읽을 수 없지만 제품에 대한 지식이 있으면 해당 정보를 보충
- 모르는 정보는 빈 값으로 남기되, 최대한 채워주세요
- ingredients의 order는 포장지 표기 순서 그대로
- nutrients의 basis는 포장지 표기 기준 (대부분 "as-fed")`
