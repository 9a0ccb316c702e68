package services

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"crisislink-http-service/config"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

// AlertPayload 发布到 MQTT 的告警消息体
type AlertPayload struct {
	MessageID string    `json:"message_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// InterfaceMQTTAlertService 定义MQTT告警推送服务接口
// 推送是广播的附加通道，订阅者仍然通过拉取通知行获取告警
type InterfaceMQTTAlertService interface {
	Connect() error
	PublishAlert(alertType, message string) error
	IsConnected() bool
	Disconnect()
}

// MQTTAlertService 将告警广播发布到MQTT主题
type MQTTAlertService struct {
	Client mqtt.Client
	Config *config.Config

	connected      bool
	connectedMutex sync.RWMutex
}

// NewMQTTAlertService 创建一个新的MQTT告警推送服务
func NewMQTTAlertService(cfg *config.Config) InterfaceMQTTAlertService {
	service := &MQTTAlertService{
		Config: cfg,
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.MQTTBrokerURL)
	opts.SetClientID(cfg.MQTTClientID)
	if cfg.MQTTUsername != "" {
		opts.SetUsername(cfg.MQTTUsername)
		opts.SetPassword(cfg.MQTTPassword)
	}
	opts.SetAutoReconnect(true)
	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		log.Printf("[MQTT] 连接丢失: %v", err)
		service.setConnected(false)
	})
	opts.SetOnConnectHandler(func(client mqtt.Client) {
		log.Printf("[MQTT] 已连接到 %s", cfg.MQTTBrokerURL)
		service.setConnected(true)
	})

	service.Client = mqtt.NewClient(opts)
	return service
}

// Connect 连接到MQTT服务器，带最大重试次数和指数退避
func (s *MQTTAlertService) Connect() error {
	if s.IsConnected() {
		return nil
	}

	maxRetries := 5
	var err error

	for i := 0; i < maxRetries; i++ {
		token := s.Client.Connect()
		if token.WaitTimeout(5*time.Second) && token.Error() == nil {
			s.setConnected(true)
			return nil
		}

		err = token.Error()
		backoffTime := time.Duration(1<<uint(i)) * time.Second // 指数退避: 1s, 2s, 4s, 8s, 16s
		log.Printf("[MQTT] 连接尝试 %d/%d 失败: %v, 将在 %v 后重试", i+1, maxRetries, err, backoffTime)
		time.Sleep(backoffTime)
	}

	return fmt.Errorf("[MQTT] 连接失败，已尝试 %d 次: %v", maxRetries, err)
}

// PublishAlert 将一条告警发布到广播主题
func (s *MQTTAlertService) PublishAlert(alertType, message string) error {
	if !s.IsConnected() {
		return fmt.Errorf("[MQTT] 未连接，无法发布告警")
	}

	payload := AlertPayload{
		MessageID: uuid.New().String(),
		Type:      alertType,
		Message:   message,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	topic := s.Config.AlertTopicPrefix + "/broadcast"
	token := s.Client.Publish(topic, 1, false, data)
	if !token.WaitTimeout(3 * time.Second) {
		return fmt.Errorf("[MQTT] 发布告警超时")
	}
	return token.Error()
}

// IsConnected 返回当前连接状态
func (s *MQTTAlertService) IsConnected() bool {
	s.connectedMutex.RLock()
	defer s.connectedMutex.RUnlock()
	return s.connected && s.Client.IsConnected()
}

// Disconnect 断开MQTT连接
func (s *MQTTAlertService) Disconnect() {
	if s.Client.IsConnected() {
		s.Client.Disconnect(250)
	}
	s.setConnected(false)
}

func (s *MQTTAlertService) setConnected(value bool) {
	s.connectedMutex.Lock()
	defer s.connectedMutex.Unlock()
	s.connected = value
}
